package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
)

// UserDirectory resolves alert recipients. Alerts for a step fan out to the
// users holding the step's owner role plus the administrators.
type UserDirectory interface {
	// GetUserIDsByRole retrieves the users holding a role.
	GetUserIDsByRole(ctx context.Context, role string) ([]kernel.UUID, error)

	// GetAdminUserIDs retrieves the administrator users.
	GetAdminUserIDs(ctx context.Context) ([]kernel.UUID, error)
}

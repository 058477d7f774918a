package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/alert"
	"shiptrack/internal/core/domain/model/kernel"
)

// AlertRepository defines the persistence contract for deadline alerts.
type AlertRepository interface {
	// Upsert inserts alerts with insert-if-absent semantics keyed on
	// (user, dedupe key). Re-deriving the same alert set is a no-op.
	Upsert(ctx context.Context, alerts []alert.Alert) error

	// GetAllByUserID retrieves a recipient's alerts, newest first.
	GetAllByUserID(ctx context.Context, userID kernel.UUID) ([]alert.Alert, error)
}

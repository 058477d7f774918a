package userrepo

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserDirectory implements UserDirectory using GORM.
type GormUserDirectory struct {
	db *gorm.DB
}

// NewGormUserDirectory creates a new GORM user directory.
func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// GetUserIDsByRole retrieves the IDs of users holding a role.
func (d *GormUserDirectory) GetUserIDsByRole(ctx context.Context, role string) ([]kernel.UUID, error) {
	var rawIDs []uuid.UUID
	err := d.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("role = ?", role).
		Pluck("id", &rawIDs).Error
	if err != nil {
		return nil, err
	}

	return toKernelIDs(rawIDs)
}

// GetAdminUserIDs retrieves the IDs of administrator users.
func (d *GormUserDirectory) GetAdminUserIDs(ctx context.Context) ([]kernel.UUID, error) {
	var rawIDs []uuid.UUID
	err := d.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("is_admin = ?", true).
		Pluck("id", &rawIDs).Error
	if err != nil {
		return nil, err
	}

	return toKernelIDs(rawIDs)
}

func toKernelIDs(rawIDs []uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

package alertrepo

import (
	"context"

	"shiptrack/internal/core/domain/model/alert"
	"shiptrack/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAlertRepository implements AlertRepository using GORM.
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GORM alert repository.
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// Upsert inserts alert rows with insert-if-absent semantics. Rows that
// collide on (user_id, dedupe_key) are silently dropped, so re-deriving the
// same alert set is a no-op.
func (r *GormAlertRepository) Upsert(ctx context.Context, alerts []alert.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	dtos := make([]AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		dtos = append(dtos, fromDomain(a))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "dedupe_key"}},
			DoNothing: true,
		}).
		Create(&dtos).Error
}

// GetAllByUserID retrieves a recipient's alerts, newest first.
func (r *GormAlertRepository) GetAllByUserID(ctx context.Context, userID kernel.UUID) ([]alert.Alert, error) {
	var dtos []AlertDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]alert.Alert, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, nil
}

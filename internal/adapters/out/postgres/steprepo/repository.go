package steprepo

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStepRepository implements StepRepository using GORM.
type GormStepRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStepRepository creates a new GORM step repository.
func NewGormStepRepository(db *gorm.DB, tracker aggregateTracker) *GormStepRepository {
	return &GormStepRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new step to the database.
func (r *GormStepRepository) Add(ctx context.Context, aggregate *step.Step) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing step to the database. Mutable columns are listed
// explicitly so cleared notes and nil timestamps are persisted too.
func (r *GormStepRepository) Update(ctx context.Context, aggregate *step.Step) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&StepDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"due_at":       dto.DueAt,
			"started_at":   dto.StartedAt,
			"completed_at": dto.CompletedAt,
			"fields":       dto.Fields,
			"notes":        dto.Notes,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a step by ID.
func (r *GormStepRepository) Get(ctx context.Context, id kernel.UUID) (*step.Step, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StepDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("step", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByShipmentID retrieves every step of a shipment ordered by sequence.
func (r *GormStepRepository) GetAllByShipmentID(ctx context.Context, shipmentID kernel.UUID) ([]*step.Step, error) {
	var dtos []StepDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("sequence_index").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	steps := make([]*step.Step, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		steps = append(steps, aggregate)
	}

	return steps, nil
}

package shipmentrepo

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment and its customer links to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
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

// Update saves an existing shipment to the database. Customer links are fixed
// at creation, so only the derived columns are written.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"overall_status": dto.OverallStatus,
			"risk":           dto.Risk,
			"updated_at":     dto.UpdatedAt,
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

// Get retrieves a shipment by ID, customer links included.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).Preload("Customers").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveIDs retrieves the IDs of shipments that are neither completed nor
// cancelled.
func (r *GormShipmentRepository) GetActiveIDs(ctx context.Context) ([]kernel.UUID, error) {
	var rawIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("overall_status NOT IN ?", []string{shipment.Completed.String(), shipment.Cancelled.String()}).
		Pluck("id", &rawIDs).Error
	if err != nil {
		return nil, err
	}

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

// AddLink saves a goods-pooling link between two shipments. Inserting an
// already linked pair is a no-op.
func (r *GormShipmentRepository) AddLink(ctx context.Context, link shipment.Link) error {
	if err := link.Validate(); err != nil {
		return err
	}

	dto := linkFromDomain(link)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "low_shipment_id"}, {Name: "high_shipment_id"}},
			DoNothing: true,
		}).
		Create(&dto).Error
}

// GetLinkedShipmentIDs retrieves the IDs of shipments linked to the given one.
func (r *GormShipmentRepository) GetLinkedShipmentIDs(ctx context.Context, shipmentID kernel.UUID) ([]kernel.UUID, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentLinkDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "low_shipment_id = ? OR high_shipment_id = ?", shipmentID.Bytes(), shipmentID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		raw := dto.HighShipmentID
		if raw == shipmentID.Bytes() {
			raw = dto.LowShipmentID
		}
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// AddException saves a new exception to the database.
func (r *GormShipmentRepository) AddException(ctx context.Context, e *shipment.Exception) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := exceptionFromDomain(e)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdateException saves an existing exception to the database.
func (r *GormShipmentRepository) UpdateException(ctx context.Context, e *shipment.Exception) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := exceptionFromDomain(e)
	result := r.db.WithContext(ctx).
		Model(&ExceptionDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":      dto.Status,
			"resolved_at": dto.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetException retrieves an exception by ID.
func (r *GormShipmentRepository) GetException(ctx context.Context, id kernel.UUID) (*shipment.Exception, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ExceptionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("exception", id.String())
		}
		return nil, err
	}

	return exceptionToDomain(dto)
}

// GetOpenExceptions retrieves all open exceptions of a shipment.
func (r *GormShipmentRepository) GetOpenExceptions(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Exception, error) {
	var dtos []ExceptionDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "shipment_id = ? AND status = ?", shipmentID.Bytes(), shipment.ExceptionOpen.String()).Error
	if err != nil {
		return nil, err
	}

	exceptions := make([]*shipment.Exception, 0, len(dtos))
	for _, dto := range dtos {
		e, err := exceptionToDomain(dto)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, e)
	}

	return exceptions, nil
}

// Package steprepo provides data transfer objects and mapping functions for
// workflow step persistence. Field trees are stored as jsonb documents, so a
// step accepts any field layout its workflow throws at it without schema
// migrations.
package steprepo

import (
	"time"

	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/step"

	"github.com/google/uuid"
)

// StepDTO represents the database structure for persisting workflow steps.
type StepDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID      uuid.UUID `gorm:"type:uuid;index"`
	SequenceIndex   int
	Name            string
	OwnerRole       string
	Status          string
	SLAHours        *int
	DueAt           *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	Fields          fieldtree.Tree `gorm:"type:jsonb;serializer:json"`
	FieldSchema     fieldtree.Tree `gorm:"type:jsonb;serializer:json"`
	Notes           string
	CustomerVisible bool
	IsExternal      bool
}

// TableName specifies the database table name for step entities.
func (StepDTO) TableName() string {
	return "steps"
}

// fromDomain converts a step domain entity to its database representation.
func fromDomain(s *step.Step) StepDTO {
	return StepDTO{
		ID:              s.ID().Bytes(),
		ShipmentID:      s.ShipmentID().Bytes(),
		SequenceIndex:   s.SequenceIndex(),
		Name:            s.Name(),
		OwnerRole:       s.OwnerRole(),
		Status:          s.Status().String(),
		SLAHours:        s.SLAHours(),
		DueAt:           s.DueAt(),
		StartedAt:       s.StartedAt(),
		CompletedAt:     s.CompletedAt(),
		Fields:          s.Fields(),
		FieldSchema:     s.Schema(),
		Notes:           s.Notes(),
		CustomerVisible: s.CustomerVisible(),
		IsExternal:      s.IsExternal(),
	}
}

// toDomain converts a database DTO to a step domain entity using RestoreStep.
func toDomain(dto StepDTO) (*step.Step, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	status, err := step.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return step.RestoreStep(
		id,
		shipmentID,
		dto.SequenceIndex,
		dto.Name,
		dto.OwnerRole,
		status,
		dto.SLAHours,
		dto.DueAt,
		dto.StartedAt,
		dto.CompletedAt,
		dto.Fields,
		dto.FieldSchema,
		dto.Notes,
		dto.CustomerVisible,
		dto.IsExternal,
	)
}

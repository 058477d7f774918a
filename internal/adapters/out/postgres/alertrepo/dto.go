// Package alertrepo provides data transfer objects and mapping functions for
// deadline alert persistence.
package alertrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/alert"
	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AlertDTO represents the database structure for persisting alerts. The
// unique index on (user_id, dedupe_key) gives Upsert its insert-if-absent
// semantics.
type AlertDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_alerts_user_dedupe"`
	ShipmentID uuid.UUID `gorm:"type:uuid"`
	StepID     uuid.UUID `gorm:"type:uuid"`
	Kind       string
	DedupeKey  string `gorm:"uniqueIndex:idx_alerts_user_dedupe"`
	DueAt      time.Time
	CreatedAt  time.Time
}

// TableName specifies the database table name for alert entities.
func (AlertDTO) TableName() string {
	return "alerts"
}

// fromDomain converts an alert row to its database representation.
func fromDomain(a alert.Alert) AlertDTO {
	return AlertDTO{
		ID:         a.ID.Bytes(),
		UserID:     a.UserID.Bytes(),
		ShipmentID: a.ShipmentID.Bytes(),
		StepID:     a.StepID.Bytes(),
		Kind:       string(a.Kind),
		DedupeKey:  a.DedupeKey,
		DueAt:      a.DueAt,
		CreatedAt:  a.CreatedAt,
	}
}

// toDomain converts a database DTO to an alert row.
func toDomain(dto AlertDTO) (alert.Alert, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return alert.Alert{}, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return alert.Alert{}, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return alert.Alert{}, err
	}
	stepID, err := kernel.UUIDFromBytes(dto.StepID[:])
	if err != nil {
		return alert.Alert{}, err
	}

	return alert.Alert{
		ID:         id,
		UserID:     userID,
		ShipmentID: shipmentID,
		StepID:     stepID,
		Kind:       alert.Kind(dto.Kind),
		DedupeKey:  dto.DedupeKey,
		DueAt:      dto.DueAt,
		CreatedAt:  dto.CreatedAt,
	}, nil
}

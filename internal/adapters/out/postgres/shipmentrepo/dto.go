// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. Customer visibility links live in a separate join
// table so board queries can filter by party without unpacking arrays.
package shipmentrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipments.
type ShipmentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkflowCode  string
	OwnerUserID   uuid.UUID `gorm:"type:uuid"`
	OverallStatus string
	Risk          string
	UpdatedAt     time.Time
	Customers     []ShipmentCustomerDTO `gorm:"foreignKey:ShipmentID"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ShipmentCustomerDTO links a shipment to a customer party that may view it.
type ShipmentCustomerDTO struct {
	ShipmentID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerPartyID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for shipment customer links.
func (ShipmentCustomerDTO) TableName() string {
	return "shipment_customers"
}

// ShipmentLinkDTO represents an undirected goods-pooling edge between two
// shipments. The pair is stored in canonical order (low id first) so the
// primary key deduplicates either insertion order.
type ShipmentLinkDTO struct {
	LowShipmentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	HighShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for shipment links.
func (ShipmentLinkDTO) TableName() string {
	return "shipment_links"
}

// ExceptionDTO represents the database structure for persisting exceptions.
type ExceptionDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID      uuid.UUID `gorm:"type:uuid;index"`
	ExceptionTypeID uuid.UUID `gorm:"type:uuid"`
	Status          string
	DefaultRisk     string
	RaisedAt        time.Time
	ResolvedAt      *time.Time
}

// TableName specifies the database table name for exception entities.
func (ExceptionDTO) TableName() string {
	return "exceptions"
}

// fromDomain converts a shipment domain entity to its database representation.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	customers := make([]ShipmentCustomerDTO, 0, len(s.CustomerPartyIDs()))
	for _, partyID := range s.CustomerPartyIDs() {
		customers = append(customers, ShipmentCustomerDTO{
			ShipmentID:      s.ID().Bytes(),
			CustomerPartyID: partyID.Bytes(),
		})
	}

	return ShipmentDTO{
		ID:            s.ID().Bytes(),
		WorkflowCode:  s.WorkflowCode(),
		OwnerUserID:   s.OwnerUserID().Bytes(),
		OverallStatus: s.Overall().String(),
		Risk:          s.Risk().String(),
		UpdatedAt:     s.UpdatedAt(),
		Customers:     customers,
	}
}

// toDomain converts a database DTO to a shipment domain entity.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerUserID, err := kernel.UUIDFromBytes(dto.OwnerUserID[:])
	if err != nil {
		return nil, err
	}
	overall, err := shipment.OverallStatusFromString(dto.OverallStatus)
	if err != nil {
		return nil, err
	}
	risk, err := shipment.RiskFromString(dto.Risk)
	if err != nil {
		return nil, err
	}

	customers := make([]kernel.UUID, 0, len(dto.Customers))
	for _, link := range dto.Customers {
		partyID, err := kernel.UUIDFromBytes(link.CustomerPartyID[:])
		if err != nil {
			return nil, err
		}
		customers = append(customers, partyID)
	}

	return shipment.RestoreShipment(id, dto.WorkflowCode, ownerUserID, customers, overall, risk, dto.UpdatedAt)
}

// linkFromDomain converts a shipment link to its database representation.
func linkFromDomain(l shipment.Link) ShipmentLinkDTO {
	return ShipmentLinkDTO{
		LowShipmentID:  l.LowShipmentID().Bytes(),
		HighShipmentID: l.HighShipmentID().Bytes(),
		CreatedAt:      l.CreatedAt(),
	}
}

// exceptionFromDomain converts an exception entity to its database representation.
func exceptionFromDomain(e *shipment.Exception) ExceptionDTO {
	return ExceptionDTO{
		ID:              e.ID().Bytes(),
		ShipmentID:      e.ShipmentID().Bytes(),
		ExceptionTypeID: e.ExceptionTypeID().Bytes(),
		Status:          e.Status().String(),
		DefaultRisk:     e.DefaultRisk().String(),
		RaisedAt:        e.RaisedAt(),
		ResolvedAt:      e.ResolvedAt(),
	}
}

// exceptionToDomain converts a database DTO to an exception entity.
func exceptionToDomain(dto ExceptionDTO) (*shipment.Exception, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	exceptionTypeID, err := kernel.UUIDFromBytes(dto.ExceptionTypeID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.ExceptionStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	defaultRisk, err := shipment.RiskFromString(dto.DefaultRisk)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreException(id, shipmentID, exceptionTypeID, status, defaultRisk, dto.RaisedAt, dto.ResolvedAt)
}

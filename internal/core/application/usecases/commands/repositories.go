// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shiptrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// StepRepoFactory provides access to the step repository within a transaction.
	StepRepoFactory interface {
		StepRepository() ports.StepRepository
	}

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// AlertRepoFactory provides access to the alert repository within a transaction.
	AlertRepoFactory interface {
		AlertRepository() ports.AlertRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations,
	// such as cancelling a shipment.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// TrackingUoW manages transactions touching steps, the shipment's
	// derived state and the alerts raised from it. Every command that can
	// move a shipment's derived status uses this shape.
	TrackingUoW interface {
		TxManager
		ShipmentRepoFactory
		StepRepoFactory
		AlertRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	// InventoryUoW manages transactions for goods operations. Allocation
	// reads the target step and shipment to check eligibility, so the
	// tracking repositories ride along.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
		ShipmentRepoFactory
		StepRepoFactory
	}

	// InventoryUoWFactory creates new inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}
)

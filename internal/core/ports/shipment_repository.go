package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment
// aggregates and their exceptions.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate,
	// including its customer party links.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetActiveIDs retrieves the identifiers of every shipment that is
	// neither completed nor cancelled. The due-date sweep iterates these.
	GetActiveIDs(ctx context.Context) ([]kernel.UUID, error)

	// AddException persists a new exception.
	AddException(ctx context.Context, e *shipment.Exception) error

	// UpdateException persists changes to an existing exception.
	UpdateException(ctx context.Context, e *shipment.Exception) error

	// GetException retrieves an exception by its unique identifier.
	GetException(ctx context.Context, id kernel.UUID) (*shipment.Exception, error)

	// GetOpenExceptions retrieves the open exceptions of a shipment.
	GetOpenExceptions(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Exception, error)

	// AddLink persists an undirected goods-pooling link between two
	// shipments. Adding the same pair twice is a no-op.
	AddLink(ctx context.Context, link shipment.Link) error

	// GetLinkedShipmentIDs retrieves the identifiers of every shipment
	// linked to the given one.
	GetLinkedShipmentIDs(ctx context.Context, shipmentID kernel.UUID) ([]kernel.UUID, error)
}

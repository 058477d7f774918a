package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/guard"
)

var ErrLinkShipmentsCommandIsNotConstructed = errors.New(
	"LinkShipmentsCommand must be created via NewLinkShipmentsCommand constructor",
)

// LinkShipmentsCommand represents a request to pool goods between two
// shipments. The link is undirected; lots received on either shipment become
// allocation candidates for the other, subject to customer scoping.
type LinkShipmentsCommand struct { //nolint:recvcheck //using for validation
	shipmentID      kernel.UUID
	otherShipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewLinkShipmentsCommand creates a command to link two shipments.
func NewLinkShipmentsCommand(shipmentID, otherShipmentID kernel.UUID) (LinkShipmentsCommand, error) {
	cmd := LinkShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := shipmentID.Validate(); err != nil {
		return LinkShipmentsCommand{}, err
	}
	if err := otherShipmentID.Validate(); err != nil {
		return LinkShipmentsCommand{}, err
	}
	if shipmentID.IsEqual(otherShipmentID) {
		return LinkShipmentsCommand{}, shipment.ErrLinkToSelf
	}

	cmd.shipmentID = shipmentID
	cmd.otherShipmentID = otherShipmentID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LinkShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrLinkShipmentsCommandIsNotConstructed)
}

// ShipmentID returns the first end of the link.
func (c LinkShipmentsCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OtherShipmentID returns the second end of the link.
func (c LinkShipmentsCommand) OtherShipmentID() kernel.UUID {
	return c.otherShipmentID
}

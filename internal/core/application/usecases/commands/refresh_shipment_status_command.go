package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrRefreshShipmentStatusCommandIsNotConstructed = errors.New(
	"RefreshShipmentStatusCommand must be created via NewRefreshShipmentStatusCommand constructor",
)

// RefreshShipmentStatusCommand represents a request to re-derive one
// shipment's overall status, risk and deadline alerts. The due-date sweep
// issues one per active shipment; nothing else about the shipment changes.
// With touch set, the shipment's last-update stamp is bumped even when the
// derived state comes out unchanged.
type RefreshShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	touch      bool

	guard guard.ConstructorGuard
}

// NewRefreshShipmentStatusCommand creates a command to refresh derived state.
func NewRefreshShipmentStatusCommand(shipmentID kernel.UUID, touch bool) (RefreshShipmentStatusCommand, error) {
	cmd := RefreshShipmentStatusCommand{
		touch: touch,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setShipmentID(shipmentID); err != nil {
		return RefreshShipmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrRefreshShipmentStatusCommandIsNotConstructed)
}

// ShipmentID returns the shipment being refreshed.
func (c RefreshShipmentStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Touch reports whether updated_at must be bumped even without changes.
func (c RefreshShipmentStatusCommand) Touch() bool {
	return c.touch
}

func (c *RefreshShipmentStatusCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrReceiveLotCommandIsNotConstructed = errors.New(
	"ReceiveLotCommand must be created via NewReceiveLotCommand constructor",
)

// ReceiveLotCommand represents a receipt of goods against a shipment. The
// lot is immutable after insert; its quantity may be zero but never
// negative.
type ReceiveLotCommand struct { //nolint:recvcheck //using for validation
	lotID                 kernel.UUID
	shipmentID            kernel.UUID
	goodID                kernel.UUID
	ownerUserID           kernel.UUID
	customerPartyID       *kernel.UUID
	appliesToAllCustomers bool
	quantity              int

	guard guard.ConstructorGuard
}

// NewReceiveLotCommand creates a command to record a received lot.
// customerPartyID scopes the lot to one customer; appliesToAllCustomers
// opens it to every linked customer instead.
func NewReceiveLotCommand(
	lotID kernel.UUID,
	shipmentID kernel.UUID,
	goodID kernel.UUID,
	ownerUserID kernel.UUID,
	customerPartyID *kernel.UUID,
	appliesToAllCustomers bool,
	quantity int,
) (ReceiveLotCommand, error) {
	cmd := ReceiveLotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLotID(lotID),
		cmd.setShipmentID(shipmentID),
		cmd.setGoodID(goodID),
		cmd.setOwnerUserID(ownerUserID),
		cmd.setCustomerPartyID(customerPartyID),
		cmd.setQuantity(quantity),
	); err != nil {
		return ReceiveLotCommand{}, err
	}

	cmd.appliesToAllCustomers = appliesToAllCustomers

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveLotCommand) Validate() error {
	return c.guard.Validate(ErrReceiveLotCommandIsNotConstructed)
}

// LotID returns the unique identifier for the new lot.
func (c ReceiveLotCommand) LotID() kernel.UUID { return c.lotID }

// ShipmentID returns the shipment the goods arrived on.
func (c ReceiveLotCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// GoodID returns the received good.
func (c ReceiveLotCommand) GoodID() kernel.UUID { return c.goodID }

// OwnerUserID returns the inventory owner.
func (c ReceiveLotCommand) OwnerUserID() kernel.UUID { return c.ownerUserID }

// CustomerPartyID returns the customer scope, if any.
func (c ReceiveLotCommand) CustomerPartyID() *kernel.UUID { return c.customerPartyID }

// AppliesToAllCustomers reports whether every linked customer may draw
// from the lot.
func (c ReceiveLotCommand) AppliesToAllCustomers() bool { return c.appliesToAllCustomers }

// Quantity returns the received quantity.
func (c ReceiveLotCommand) Quantity() int { return c.quantity }

func (c *ReceiveLotCommand) setLotID(lotID kernel.UUID) error {
	if err := lotID.Validate(); err != nil {
		return err
	}

	c.lotID = lotID
	return nil
}

func (c *ReceiveLotCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ReceiveLotCommand) setGoodID(goodID kernel.UUID) error {
	if err := goodID.Validate(); err != nil {
		return err
	}

	c.goodID = goodID
	return nil
}

func (c *ReceiveLotCommand) setOwnerUserID(ownerUserID kernel.UUID) error {
	if err := ownerUserID.Validate(); err != nil {
		return err
	}

	c.ownerUserID = ownerUserID
	return nil
}

func (c *ReceiveLotCommand) setCustomerPartyID(customerPartyID *kernel.UUID) error {
	if customerPartyID != nil {
		if err := customerPartyID.Validate(); err != nil {
			return err
		}
	}

	c.customerPartyID = customerPartyID
	return nil
}

func (c *ReceiveLotCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return inventory.ErrNegativeQuantity
	}

	c.quantity = quantity
	return nil
}

package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/guard"
)

var ErrRaiseExceptionCommandIsNotConstructed = errors.New(
	"RaiseExceptionCommand must be created via NewRaiseExceptionCommand constructor",
)

// RaiseExceptionCommand represents a request to open an exception on a
// shipment. The exception's default risk feeds the shipment's derived risk
// while it stays open.
type RaiseExceptionCommand struct { //nolint:recvcheck //using for validation
	exceptionID     kernel.UUID
	shipmentID      kernel.UUID
	exceptionTypeID kernel.UUID
	defaultRisk     shipment.Risk

	guard guard.ConstructorGuard
}

// NewRaiseExceptionCommand creates a command to raise an exception.
func NewRaiseExceptionCommand(
	exceptionID kernel.UUID,
	shipmentID kernel.UUID,
	exceptionTypeID kernel.UUID,
	defaultRisk shipment.Risk,
) (RaiseExceptionCommand, error) {
	cmd := RaiseExceptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setExceptionID(exceptionID),
		cmd.setShipmentID(shipmentID),
		cmd.setExceptionTypeID(exceptionTypeID),
		cmd.setDefaultRisk(defaultRisk),
	); err != nil {
		return RaiseExceptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RaiseExceptionCommand) Validate() error {
	return c.guard.Validate(ErrRaiseExceptionCommandIsNotConstructed)
}

// ExceptionID returns the unique identifier for the new exception.
func (c RaiseExceptionCommand) ExceptionID() kernel.UUID { return c.exceptionID }

// ShipmentID returns the shipment the exception is raised on.
func (c RaiseExceptionCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// ExceptionTypeID returns the configured exception type.
func (c RaiseExceptionCommand) ExceptionTypeID() kernel.UUID { return c.exceptionTypeID }

// DefaultRisk returns the risk rating carried while the exception is open.
func (c RaiseExceptionCommand) DefaultRisk() shipment.Risk { return c.defaultRisk }

func (c *RaiseExceptionCommand) setExceptionID(exceptionID kernel.UUID) error {
	if err := exceptionID.Validate(); err != nil {
		return err
	}

	c.exceptionID = exceptionID
	return nil
}

func (c *RaiseExceptionCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *RaiseExceptionCommand) setExceptionTypeID(exceptionTypeID kernel.UUID) error {
	if err := exceptionTypeID.Validate(); err != nil {
		return err
	}

	c.exceptionTypeID = exceptionTypeID
	return nil
}

func (c *RaiseExceptionCommand) setDefaultRisk(defaultRisk shipment.Risk) error {
	if err := defaultRisk.Validate(); err != nil {
		return err
	}

	c.defaultRisk = defaultRisk
	return nil
}

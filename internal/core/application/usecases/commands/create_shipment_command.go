package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrWorkflowCodeIsRequired = errors.New("workflow code is required")
)

// CreateShipmentCommand represents a request to open a new tracked shipment.
// The workflow code selects the template its steps are instantiated from.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID       kernel.UUID
	workflowCode     string
	ownerUserID      kernel.UUID
	customerPartyIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to open a shipment.
// Validates that the shipment ID and owner are valid and a workflow code is
// given. Customer party links are optional at creation time.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	workflowCode string,
	ownerUserID kernel.UUID,
	customerPartyIDs []kernel.UUID,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setWorkflowCode(workflowCode),
		cmd.setOwnerUserID(ownerUserID),
		cmd.setCustomerPartyIDs(customerPartyIDs),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// WorkflowCode returns the workflow template code.
func (c CreateShipmentCommand) WorkflowCode() string {
	return c.workflowCode
}

// OwnerUserID returns the user responsible for the shipment.
func (c CreateShipmentCommand) OwnerUserID() kernel.UUID {
	return c.ownerUserID
}

// CustomerPartyIDs returns the customer parties linked at creation.
func (c CreateShipmentCommand) CustomerPartyIDs() []kernel.UUID {
	return c.customerPartyIDs
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setWorkflowCode(workflowCode string) error {
	if workflowCode == "" {
		return ErrWorkflowCodeIsRequired
	}

	c.workflowCode = workflowCode
	return nil
}

func (c *CreateShipmentCommand) setOwnerUserID(ownerUserID kernel.UUID) error {
	if err := ownerUserID.Validate(); err != nil {
		return err
	}

	c.ownerUserID = ownerUserID
	return nil
}

func (c *CreateShipmentCommand) setCustomerPartyIDs(customerPartyIDs []kernel.UUID) error {
	for _, id := range customerPartyIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.customerPartyIDs = customerPartyIDs
	return nil
}

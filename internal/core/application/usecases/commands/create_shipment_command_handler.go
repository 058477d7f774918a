package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/core/domain/services/workflow"
	"shiptrack/internal/pkg/errs"
)

// CreateShipmentCommandHandler opens a shipment and instantiates its steps
// from the workflow template. The shipment starts in Created status with
// OnTrack risk; every step starts Pending.
type CreateShipmentCommandHandler struct {
	uowFactory TrackingUoWFactory
	workflows  *workflow.Registry
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(
	uowFactory TrackingUoWFactory,
	workflows *workflow.Registry,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		workflows:  workflows,
	}
}

// Handle processes the shipment creation command. An unknown workflow code
// is rejected before anything is persisted.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	template, ok := h.workflows.Template(cmd.WorkflowCode())
	if !ok {
		return errs.NewValueIsInvalidError("workflowCode")
	}

	now := time.Now().UTC()
	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(), cmd.WorkflowCode(), cmd.OwnerUserID(), cmd.CustomerPartyIDs(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	stepRepo := uow.StepRepository()
	for i, definition := range template.Steps {
		s, err := step.NewStep(
			kernel.NewUUID(),
			aggregate.ID(),
			i,
			definition.Name,
			definition.OwnerRole,
			definition.SLAHours,
			definition.Schema,
			definition.CustomerVisible,
			definition.IsExternal,
		)
		if err != nil {
			return err
		}
		if err = stepRepo.Add(ctx, s); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

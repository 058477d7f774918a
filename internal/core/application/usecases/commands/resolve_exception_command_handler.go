package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/ports"
)

// ResolveExceptionCommandHandler closes an exception and refreshes the
// shipment's derived risk. Resolving the last open exception lets the risk
// fall back to what the steps alone imply.
type ResolveExceptionCommandHandler struct {
	uowFactory TrackingUoWFactory
	refresher  derivedRefresher
}

// NewResolveExceptionCommandHandler creates a handler for resolving exceptions.
func NewResolveExceptionCommandHandler(
	uowFactory TrackingUoWFactory,
	directory ports.UserDirectory,
) ResolveExceptionCommandHandler {
	return ResolveExceptionCommandHandler{
		uowFactory: uowFactory,
		refresher:  newDerivedRefresher(directory),
	}
}

// Handle processes the resolve exception command. Resolving an already
// resolved exception is an error, not a silent no-op.
func (h *ResolveExceptionCommandHandler) Handle(ctx context.Context, cmd ResolveExceptionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	exception, err := uow.ShipmentRepository().GetException(ctx, cmd.ExceptionID())
	if err != nil {
		return err
	}

	if err = exception.Resolve(now); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().UpdateException(ctx, exception); err != nil {
		return err
	}

	aggregate, err := uow.ShipmentRepository().Get(ctx, exception.ShipmentID())
	if err != nil {
		return err
	}

	steps, err := uow.StepRepository().GetAllByShipmentID(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	if err = h.refresher.refresh(ctx, uow, aggregate, steps, now, false); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

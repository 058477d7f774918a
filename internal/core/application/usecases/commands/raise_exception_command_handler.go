package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/ports"
)

// RaiseExceptionCommandHandler opens an exception on a shipment and
// immediately refreshes the shipment's derived risk, so a Blocked-rated
// exception surfaces on the board in the same transaction.
type RaiseExceptionCommandHandler struct {
	uowFactory TrackingUoWFactory
	refresher  derivedRefresher
}

// NewRaiseExceptionCommandHandler creates a handler for raising exceptions.
func NewRaiseExceptionCommandHandler(
	uowFactory TrackingUoWFactory,
	directory ports.UserDirectory,
) RaiseExceptionCommandHandler {
	return RaiseExceptionCommandHandler{
		uowFactory: uowFactory,
		refresher:  newDerivedRefresher(directory),
	}
}

// Handle processes the raise exception command.
func (h *RaiseExceptionCommandHandler) Handle(ctx context.Context, cmd RaiseExceptionCommand) error {
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

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if aggregate.IsCancelled() {
		return ErrShipmentIsCancelled
	}

	exception, err := shipment.NewException(
		cmd.ExceptionID(), cmd.ShipmentID(), cmd.ExceptionTypeID(), cmd.DefaultRisk(), now)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().AddException(ctx, exception); err != nil {
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

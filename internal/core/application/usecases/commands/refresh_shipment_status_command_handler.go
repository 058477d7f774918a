package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/ports"
)

// RefreshShipmentStatusCommandHandler re-derives one shipment's status,
// risk and alerts without any step edit. Time passing is the only input
// that changes between runs: a step crossing its due date flips the
// shipment to AtRisk and raises the overdue alert.
type RefreshShipmentStatusCommandHandler struct {
	uowFactory TrackingUoWFactory
	refresher  derivedRefresher
}

// NewRefreshShipmentStatusCommandHandler creates a handler for derived
// state refreshes.
func NewRefreshShipmentStatusCommandHandler(
	uowFactory TrackingUoWFactory,
	directory ports.UserDirectory,
) RefreshShipmentStatusCommandHandler {
	return RefreshShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		refresher:  newDerivedRefresher(directory),
	}
}

// Handle processes the refresh command. Cancelled shipments are left alone.
func (h *RefreshShipmentStatusCommandHandler) Handle(ctx context.Context, cmd RefreshShipmentStatusCommand) error {
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
		return nil
	}

	steps, err := uow.StepRepository().GetAllByShipmentID(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	if err = h.refresher.refresh(ctx, uow, aggregate, steps, now, cmd.Touch()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

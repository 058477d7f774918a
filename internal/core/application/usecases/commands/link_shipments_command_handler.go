package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/shipment"
)

// LinkShipmentsCommandHandler links two shipments for goods pooling. Both
// shipments must exist and neither may be cancelled. Linking an already
// linked pair is a no-op.
type LinkShipmentsCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewLinkShipmentsCommandHandler creates a handler for shipment linking.
func NewLinkShipmentsCommandHandler(uowFactory ShipmentUoWFactory) LinkShipmentsCommandHandler {
	return LinkShipmentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the link command.
func (h *LinkShipmentsCommandHandler) Handle(ctx context.Context, cmd LinkShipmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()

	first, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if first.IsCancelled() {
		return ErrShipmentIsCancelled
	}

	second, err := repo.Get(ctx, cmd.OtherShipmentID())
	if err != nil {
		return err
	}
	if second.IsCancelled() {
		return ErrShipmentIsCancelled
	}

	link, err := shipment.NewLink(first.ID(), second.ID(), time.Now().UTC())
	if err != nil {
		return err
	}
	if err = repo.AddLink(ctx, link); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"
)

// ReceiveLotCommandHandler records a received goods lot and, for a positive
// quantity, the IN ledger entry that credits the owner's balance. This is
// the only operation that increases a balance.
type ReceiveLotCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewReceiveLotCommandHandler creates a handler for lot receipts.
func NewReceiveLotCommandHandler(uowFactory InventoryUoWFactory) ReceiveLotCommandHandler {
	return ReceiveLotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the lot receipt command. The shipment must exist and
// must not be cancelled.
func (h *ReceiveLotCommandHandler) Handle(ctx context.Context, cmd ReceiveLotCommand) error {
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

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if aggregate.IsCancelled() {
		return ErrShipmentIsCancelled
	}

	now := time.Now().UTC()
	lot, err := inventory.NewGoodsLot(
		cmd.LotID(),
		cmd.ShipmentID(),
		cmd.GoodID(),
		cmd.OwnerUserID(),
		cmd.CustomerPartyID(),
		cmd.AppliesToAllCustomers(),
		cmd.Quantity(),
		now,
	)
	if err != nil {
		return err
	}

	inventoryRepo := uow.InventoryRepository()
	if err = inventoryRepo.AddLot(ctx, lot); err != nil {
		return err
	}

	if lot.Quantity() > 0 {
		lotID := lot.ID()
		shipmentID := lot.ShipmentID()
		in, entryErr := inventory.NewLedgerEntry(
			kernel.NewUUID(), lot.OwnerUserID(), lot.GoodID(),
			&shipmentID, &lotID, nil,
			inventory.In, lot.Quantity(), "lot receipt", now)
		if entryErr != nil {
			return entryErr
		}
		if err = inventoryRepo.AddLedgerEntry(ctx, in); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

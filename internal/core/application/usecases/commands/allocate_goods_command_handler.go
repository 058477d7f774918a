package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/services/allocation"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"
)

// AllocationGrantResult reports one granted allocation.
type AllocationGrantResult struct {
	LotID         kernel.UUID
	TakenQuantity int
}

// AllocationSkipResult reports one skipped lot and why.
type AllocationSkipResult struct {
	LotID  kernel.UUID
	Reason string
}

// AllocateGoodsResult is the per-lot outcome of one allocation batch.
type AllocateGoodsResult struct {
	Grants []AllocationGrantResult
	Skips  []AllocationSkipResult
}

// AllocateGoodsCommandHandler grants goods from received lots to a workflow
// step. Per grant it writes the allocation row, the lot's IN ledger entry
// when the receipt was never materialized, and the OUT ledger entry, all in
// one transaction. Balances move with the ledger and never go negative.
type AllocateGoodsCommandHandler struct {
	uowFactory InventoryUoWFactory
	planner    *allocation.Planner
}

// NewAllocateGoodsCommandHandler creates a handler for goods allocation.
func NewAllocateGoodsCommandHandler(uowFactory InventoryUoWFactory) AllocateGoodsCommandHandler {
	return AllocateGoodsCommandHandler{
		uowFactory: uowFactory,
		planner:    allocation.NewPlanner(),
	}
}

// Handle processes the allocation batch. Skipped lots are reported in the
// result, not as errors; the batch fails only on integrity violations.
func (h *AllocateGoodsCommandHandler) Handle(
	ctx context.Context,
	cmd AllocateGoodsCommand,
) (AllocateGoodsResult, error) {
	if err := cmd.Validate(); err != nil {
		return AllocateGoodsResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AllocateGoodsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.StepRepository().Get(ctx, cmd.StepID())
	if err != nil {
		return AllocateGoodsResult{}, err
	}

	aggregate, err := uow.ShipmentRepository().Get(ctx, target.ShipmentID())
	if err != nil {
		return AllocateGoodsResult{}, err
	}
	if aggregate.IsCancelled() {
		return AllocateGoodsResult{}, ErrShipmentIsCancelled
	}

	linkedIDs, err := uow.ShipmentRepository().GetLinkedShipmentIDs(ctx, aggregate.ID())
	if err != nil {
		return AllocateGoodsResult{}, err
	}

	inventoryRepo := uow.InventoryRepository()
	lots, err := h.collectLotStates(ctx, inventoryRepo, target.ID(), cmd.Requests())
	if err != nil {
		return AllocateGoodsResult{}, err
	}

	requests := make([]allocation.Request, len(cmd.Requests()))
	for i, req := range cmd.Requests() {
		requests[i] = allocation.Request{LotID: req.LotID, Quantity: req.Quantity}
	}

	plan := h.planner.Plan(requests, lots, allocation.Scope{
		ShipmentID:       aggregate.ID(),
		LinkedShipments:  linkedIDs,
		CustomerPartyIDs: aggregate.CustomerPartyIDs(),
	})

	result := AllocateGoodsResult{}
	for _, skip := range plan.Skips {
		result.Skips = append(result.Skips, AllocationSkipResult{LotID: skip.LotID, Reason: skip.Reason})
	}

	for _, grant := range plan.Grants {
		if err = h.persistGrant(ctx, inventoryRepo, target.ID(), grant, now); err != nil {
			return AllocateGoodsResult{}, err
		}
		result.Grants = append(result.Grants, AllocationGrantResult{
			LotID:         grant.Lot.ID(),
			TakenQuantity: grant.TakenQuantity,
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return AllocateGoodsResult{}, err
	}

	return result, nil
}

// collectLotStates loads the planner's view of every requested lot. Unknown
// lots are simply absent; the planner reports them as skips.
func (h *AllocateGoodsCommandHandler) collectLotStates(
	ctx context.Context,
	repo ports.InventoryRepository,
	stepID kernel.UUID,
	requests []AllocationRequest,
) (map[kernel.UUID]allocation.LotState, error) {
	lots := make(map[kernel.UUID]allocation.LotState, len(requests))

	for _, req := range requests {
		if _, seen := lots[req.LotID]; seen {
			continue
		}

		lot, err := repo.GetLot(ctx, req.LotID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return nil, err
		}

		taken, err := repo.GetAllocatedQuantity(ctx, req.LotID)
		if err != nil {
			return nil, err
		}
		allocated, err := repo.HasAllocation(ctx, req.LotID, stepID)
		if err != nil {
			return nil, err
		}
		hasIn, err := repo.HasInEntry(ctx, req.LotID)
		if err != nil {
			return nil, err
		}

		lots[req.LotID] = allocation.LotState{
			Lot:              lot,
			TakenQuantity:    taken,
			AlreadyAllocated: allocated,
			HasInEntry:       hasIn,
		}
	}

	return lots, nil
}

// persistGrant writes one grant: the lot's backfilled IN entry when needed,
// the allocation row, then the OUT entry that moves the balance.
func (h *AllocateGoodsCommandHandler) persistGrant(
	ctx context.Context,
	repo ports.InventoryRepository,
	stepID kernel.UUID,
	grant allocation.Grant,
	now time.Time,
) error {
	lot := grant.Lot
	lotID := lot.ID()
	shipmentID := lot.ShipmentID()

	if grant.NeedsInEntry {
		in, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), lot.OwnerUserID(), lot.GoodID(),
			&shipmentID, &lotID, nil,
			inventory.In, lot.Quantity(), "lot receipt", now)
		if err != nil {
			return err
		}
		if err = repo.AddLedgerEntry(ctx, in); err != nil {
			return err
		}
	}

	grantRow, err := inventory.NewAllocation(
		kernel.NewUUID(), lotID, stepID, grant.TakenQuantity, now)
	if err != nil {
		return err
	}
	if err = repo.AddAllocation(ctx, grantRow); err != nil {
		return err
	}

	out, err := inventory.NewLedgerEntry(
		kernel.NewUUID(), lot.OwnerUserID(), lot.GoodID(),
		&shipmentID, &lotID, &stepID,
		inventory.Out, grant.TakenQuantity, "allocation", now)
	if err != nil {
		return err
	}
	return repo.AddLedgerEntry(ctx, out)
}

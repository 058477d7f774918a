package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for goods lots, the
// allocation ledger and the materialized balances.
type InventoryRepository interface {
	// AddLot persists a new goods lot. Lots are immutable after insert.
	AddLot(ctx context.Context, lot *inventory.GoodsLot) error

	// GetLot retrieves a lot by its unique identifier.
	GetLot(ctx context.Context, id kernel.UUID) (*inventory.GoodsLot, error)

	// GetAllocatedQuantity returns the sum of a lot's allocations.
	GetAllocatedQuantity(ctx context.Context, lotID kernel.UUID) (int, error)

	// HasAllocation reports whether an allocation already exists for the
	// lot and step pair.
	HasAllocation(ctx context.Context, lotID, stepID kernel.UUID) (bool, error)

	// AddAllocation inserts an allocation. At most one row exists per
	// (lot, step) pair; a conflicting insert returns
	// inventory.ErrDuplicateAllocation and writes nothing.
	AddAllocation(ctx context.Context, a *inventory.Allocation) error

	// AddLedgerEntry appends a ledger entry and folds it into the
	// (owner, good) balance in the same transaction. An OUT entry that
	// would drive the balance negative returns
	// inventory.ErrInsufficientBalance and writes nothing.
	AddLedgerEntry(ctx context.Context, e *inventory.LedgerEntry) error

	// HasInEntry reports whether the lot's receipt has been materialized
	// as an IN ledger entry.
	HasInEntry(ctx context.Context, lotID kernel.UUID) (bool, error)

	// GetBalance retrieves the materialized balance for an owner and
	// good. A missing row reads as a zero balance, not as an error.
	GetBalance(ctx context.Context, ownerUserID, goodID kernel.UUID) (inventory.Balance, error)
}

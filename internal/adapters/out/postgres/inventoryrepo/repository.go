package inventoryrepo

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddLot saves a new goods lot to the database. Lots are immutable after
// insert, so there is no corresponding update.
func (r *GormInventoryRepository) AddLot(ctx context.Context, lot *inventory.GoodsLot) error {
	if err := lot.Validate(); err != nil {
		return err
	}

	dto := lotFromDomain(lot)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(lot.ID(), lot)
	return nil
}

// GetLot retrieves a goods lot by ID.
func (r *GormInventoryRepository) GetLot(ctx context.Context, id kernel.UUID) (*inventory.GoodsLot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GoodsLotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("goods lot", id.String())
		}
		return nil, err
	}

	return lotToDomain(dto)
}

// GetAllocatedQuantity returns the sum of a lot's allocations.
func (r *GormInventoryRepository) GetAllocatedQuantity(ctx context.Context, lotID kernel.UUID) (int, error) {
	var taken int
	err := r.db.WithContext(ctx).
		Model(&AllocationDTO{}).
		Select("COALESCE(SUM(taken_quantity), 0)").
		Where("lot_id = ?", lotID.Bytes()).
		Scan(&taken).Error
	if err != nil {
		return 0, err
	}

	return taken, nil
}

// HasAllocation reports whether an allocation exists for the lot and step pair.
func (r *GormInventoryRepository) HasAllocation(ctx context.Context, lotID, stepID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AllocationDTO{}).
		Where("lot_id = ? AND step_id = ?", lotID.Bytes(), stepID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// AddAllocation inserts an allocation. The unique (lot_id, step_id) index
// turns a concurrent duplicate into inventory.ErrDuplicateAllocation instead
// of a second row.
func (r *GormInventoryRepository) AddAllocation(ctx context.Context, a *inventory.Allocation) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := allocationFromDomain(a)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lot_id"}, {Name: "step_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return inventory.ErrDuplicateAllocation
	}

	return nil
}

// AddLedgerEntry appends a ledger entry and folds it into the (owner, good)
// balance row. Both writes ride the ambient transaction, so a failed fold
// leaves no orphan entry behind.
func (r *GormInventoryRepository) AddLedgerEntry(ctx context.Context, e *inventory.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	balance, balanceDTO, err := r.lockBalance(ctx, e.OwnerUserID(), e.GoodID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := balance.Apply(e, now); err != nil {
		return err
	}

	dto := entryFromDomain(e)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	balanceDTO.Quantity = balance.Quantity
	balanceDTO.UpdatedAt = balance.UpdatedAt
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_user_id"}, {Name: "good_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   balanceDTO.Quantity,
				"updated_at": balanceDTO.UpdatedAt,
			}),
		}).
		Create(&balanceDTO).Error
}

// lockBalance loads the balance row for update, or a zero balance when the
// pair has no row yet.
func (r *GormInventoryRepository) lockBalance(ctx context.Context, ownerUserID, goodID kernel.UUID) (inventory.Balance, BalanceDTO, error) {
	var dto BalanceDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "owner_user_id = ? AND good_id = ?", ownerUserID.Bytes(), goodID.Bytes()).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return inventory.Balance{}, BalanceDTO{}, err
		}
		dto = BalanceDTO{
			OwnerUserID: ownerUserID.Bytes(),
			GoodID:      goodID.Bytes(),
		}
	}

	balance, err := balanceToDomain(dto)
	if err != nil {
		return inventory.Balance{}, BalanceDTO{}, err
	}

	return balance, dto, nil
}

// HasInEntry reports whether the lot's receipt IN entry has been written.
func (r *GormInventoryRepository) HasInEntry(ctx context.Context, lotID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LedgerEntryDTO{}).
		Where("lot_id = ? AND direction = ?", lotID.Bytes(), inventory.In.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetBalance retrieves the materialized balance for an owner and good.
// A missing row reads as a zero balance.
func (r *GormInventoryRepository) GetBalance(ctx context.Context, ownerUserID, goodID kernel.UUID) (inventory.Balance, error) {
	var dto BalanceDTO
	err := r.db.WithContext(ctx).
		First(&dto, "owner_user_id = ? AND good_id = ?", ownerUserID.Bytes(), goodID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inventory.Balance{
				OwnerUserID: ownerUserID,
				GoodID:      goodID,
			}, nil
		}
		return inventory.Balance{}, err
	}

	return balanceToDomain(dto)
}

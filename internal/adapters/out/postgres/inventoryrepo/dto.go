// Package inventoryrepo provides data transfer objects and mapping functions
// for goods lots, allocations, the inventory ledger and materialized
// balances. The ledger is append-only; balances are a per-(owner, good)
// materialization folded inside the same transaction as each entry.
package inventoryrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// GoodsLotDTO represents the database structure for persisting goods lots.
type GoodsLotDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID            uuid.UUID `gorm:"type:uuid;index"`
	GoodID                uuid.UUID `gorm:"type:uuid"`
	OwnerUserID           uuid.UUID `gorm:"type:uuid"`
	CustomerPartyID       *uuid.UUID `gorm:"type:uuid"`
	AppliesToAllCustomers bool
	Quantity              int
	CreatedAt             time.Time
}

// TableName specifies the database table name for goods lot entities.
func (GoodsLotDTO) TableName() string {
	return "goods_lots"
}

// AllocationDTO represents the database structure for persisting allocations.
// The unique index on (lot_id, step_id) is what makes allocation idempotent
// under concurrent writers.
type AllocationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotID         uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_allocations_lot_step"`
	StepID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_allocations_lot_step"`
	TakenQuantity int
	CreatedAt     time.Time
}

// TableName specifies the database table name for allocation entities.
func (AllocationDTO) TableName() string {
	return "allocations"
}

// LedgerEntryDTO represents the database structure for persisting ledger entries.
type LedgerEntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerUserID uuid.UUID  `gorm:"type:uuid;index"`
	GoodID      uuid.UUID  `gorm:"type:uuid"`
	ShipmentID  *uuid.UUID `gorm:"type:uuid"`
	LotID       *uuid.UUID `gorm:"type:uuid;index"`
	StepID      *uuid.UUID `gorm:"type:uuid"`
	Direction   string
	Quantity    int
	Note        string
	CreatedAt   time.Time
}

// TableName specifies the database table name for ledger entry entities.
func (LedgerEntryDTO) TableName() string {
	return "ledger_entries"
}

// BalanceDTO represents the materialized balance row for an owner and good.
type BalanceDTO struct {
	OwnerUserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	GoodID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity    int
	UpdatedAt   time.Time
}

// TableName specifies the database table name for balance rows.
func (BalanceDTO) TableName() string {
	return "balances"
}

// lotFromDomain converts a goods lot entity to its database representation.
func lotFromDomain(l *inventory.GoodsLot) GoodsLotDTO {
	var customerPartyID *uuid.UUID
	if l.CustomerPartyID() != nil {
		raw := l.CustomerPartyID().Bytes()
		customerPartyID = &raw
	}

	return GoodsLotDTO{
		ID:                    l.ID().Bytes(),
		ShipmentID:            l.ShipmentID().Bytes(),
		GoodID:                l.GoodID().Bytes(),
		OwnerUserID:           l.OwnerUserID().Bytes(),
		CustomerPartyID:       customerPartyID,
		AppliesToAllCustomers: l.AppliesToAllCustomers(),
		Quantity:              l.Quantity(),
		CreatedAt:             l.CreatedAt(),
	}
}

// lotToDomain converts a database DTO to a goods lot entity.
func lotToDomain(dto GoodsLotDTO) (*inventory.GoodsLot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	goodID, err := kernel.UUIDFromBytes(dto.GoodID[:])
	if err != nil {
		return nil, err
	}
	ownerUserID, err := kernel.UUIDFromBytes(dto.OwnerUserID[:])
	if err != nil {
		return nil, err
	}
	var customerPartyID *kernel.UUID
	if dto.CustomerPartyID != nil {
		partyID, err := kernel.UUIDFromBytes(dto.CustomerPartyID[:])
		if err != nil {
			return nil, err
		}
		customerPartyID = &partyID
	}

	return inventory.RestoreGoodsLot(
		id,
		shipmentID,
		goodID,
		ownerUserID,
		customerPartyID,
		dto.AppliesToAllCustomers,
		dto.Quantity,
		dto.CreatedAt,
	)
}

// allocationFromDomain converts an allocation entity to its database representation.
func allocationFromDomain(a *inventory.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:            a.ID().Bytes(),
		LotID:         a.LotID().Bytes(),
		StepID:        a.StepID().Bytes(),
		TakenQuantity: a.TakenQuantity(),
		CreatedAt:     a.CreatedAt(),
	}
}

// entryFromDomain converts a ledger entry entity to its database representation.
func entryFromDomain(e *inventory.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:          e.ID().Bytes(),
		OwnerUserID: e.OwnerUserID().Bytes(),
		GoodID:      e.GoodID().Bytes(),
		ShipmentID:  optionalUUID(e.ShipmentID()),
		LotID:       optionalUUID(e.LotID()),
		StepID:      optionalUUID(e.StepID()),
		Direction:   e.Direction().String(),
		Quantity:    e.Quantity(),
		Note:        e.Note(),
		CreatedAt:   e.CreatedAt(),
	}
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// balanceToDomain converts a database DTO to a balance value.
func balanceToDomain(dto BalanceDTO) (inventory.Balance, error) {
	ownerUserID, err := kernel.UUIDFromBytes(dto.OwnerUserID[:])
	if err != nil {
		return inventory.Balance{}, err
	}
	goodID, err := kernel.UUIDFromBytes(dto.GoodID[:])
	if err != nil {
		return inventory.Balance{}, err
	}

	return inventory.Balance{
		OwnerUserID: ownerUserID,
		GoodID:      goodID,
		Quantity:    dto.Quantity,
		UpdatedAt:   dto.UpdatedAt,
	}, nil
}

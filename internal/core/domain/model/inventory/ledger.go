package inventory

import (
	"errors"
	"fmt"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
)

var (
	// ErrLedgerEntryIsNotConstructed is returned when a LedgerEntry instance
	// was not created through its factory methods.
	ErrLedgerEntryIsNotConstructed = errors.New("LedgerEntry must be created via NewLedgerEntry or RestoreLedgerEntry")

	// ErrInsufficientBalance indicates an OUT entry would drive an
	// owner/good balance below zero. Surfaced as a data integrity failure.
	ErrInsufficientBalance = errors.New("balance would go negative")
)

// Direction marks a ledger entry as a receipt (IN) or a consumption (OUT).
type Direction int

const (
	DirectionUnknown Direction = iota
	In
	Out
)

// Validate checks if the Direction value is valid.
func (d Direction) Validate() error {
	if d != In && d != Out {
		return errs.NewValueIsInvalidErrorWithCause(
			"direction", fmt.Errorf("%d is not a valid ledger direction", d))
	}
	return nil
}

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case In:
		return "IN"
	case Out:
		return "OUT"
	default:
		return "Unknown"
	}
}

// LedgerEntry is one immutable movement in the append-only inventory ledger.
// The signed sum of entries per (owner, good) is the source of truth for
// that owner's balance; BalanceRecord rows are a materialization of it.
type LedgerEntry struct {
	id          kernel.UUID
	ownerUserID kernel.UUID
	goodID      kernel.UUID
	shipmentID  *kernel.UUID
	lotID       *kernel.UUID
	stepID      *kernel.UUID
	direction   Direction
	quantity    int
	note        string
	createdAt   time.Time

	isConstructed bool
}

// NewLedgerEntry appends a movement to the ledger. The quantity must be
// positive; the direction carries the sign.
func NewLedgerEntry(
	id kernel.UUID,
	ownerUserID kernel.UUID,
	goodID kernel.UUID,
	shipmentID, lotID, stepID *kernel.UUID,
	direction Direction,
	quantity int,
	note string,
	now time.Time,
) (*LedgerEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ownerUserID.Validate(); err != nil {
		return nil, err
	}
	if err := goodID.Validate(); err != nil {
		return nil, err
	}
	if err := direction.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrNegativeQuantity
	}

	return &LedgerEntry{
		id:            id,
		ownerUserID:   ownerUserID,
		goodID:        goodID,
		shipmentID:    shipmentID,
		lotID:         lotID,
		stepID:        stepID,
		direction:     direction,
		quantity:      quantity,
		note:          note,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreLedgerEntry reconstructs a ledger entry from persistence.
func RestoreLedgerEntry(
	id kernel.UUID,
	ownerUserID kernel.UUID,
	goodID kernel.UUID,
	shipmentID, lotID, stepID *kernel.UUID,
	direction Direction,
	quantity int,
	note string,
	createdAt time.Time,
) (*LedgerEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &LedgerEntry{
		id:            id,
		ownerUserID:   ownerUserID,
		goodID:        goodID,
		shipmentID:    shipmentID,
		lotID:         lotID,
		stepID:        stepID,
		direction:     direction,
		quantity:      quantity,
		note:          note,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the LedgerEntry instance was properly constructed.
func (e *LedgerEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrLedgerEntryIsNotConstructed
	}
	return nil
}

func (e *LedgerEntry) ID() kernel.UUID          { return e.id }
func (e *LedgerEntry) OwnerUserID() kernel.UUID { return e.ownerUserID }
func (e *LedgerEntry) GoodID() kernel.UUID      { return e.goodID }
func (e *LedgerEntry) ShipmentID() *kernel.UUID { return e.shipmentID }
func (e *LedgerEntry) LotID() *kernel.UUID      { return e.lotID }
func (e *LedgerEntry) StepID() *kernel.UUID     { return e.stepID }
func (e *LedgerEntry) Direction() Direction     { return e.direction }
func (e *LedgerEntry) Quantity() int            { return e.quantity }
func (e *LedgerEntry) Note() string             { return e.note }
func (e *LedgerEntry) CreatedAt() time.Time     { return e.createdAt }

// SignedQuantity returns the quantity with the direction's sign applied.
func (e *LedgerEntry) SignedQuantity() int {
	if e.direction == Out {
		return -e.quantity
	}
	return e.quantity
}

// Balance is the materialized running total for one (owner, good) pair.
// Invariant: Quantity equals the signed sum of all ledger entries for the
// pair and never goes negative.
type Balance struct {
	OwnerUserID kernel.UUID
	GoodID      kernel.UUID
	Quantity    int
	UpdatedAt   time.Time
}

// Apply folds a ledger entry into the balance, enforcing non-negativity.
func (b *Balance) Apply(entry *LedgerEntry, now time.Time) error {
	next := b.Quantity + entry.SignedQuantity()
	if next < 0 {
		return ErrInsufficientBalance
	}
	b.Quantity = next
	b.UpdatedAt = now
	return nil
}

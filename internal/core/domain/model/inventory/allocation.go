package inventory

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
)

var (
	// ErrAllocationIsNotConstructed is returned when an Allocation instance was
	// not created through the NewAllocation or RestoreAllocation factory methods.
	ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation or RestoreAllocation")

	// ErrDuplicateAllocation indicates a second allocation insert raced past
	// the idempotency check for the same (lot, step) pair. This is a data
	// integrity failure and is surfaced, never silently corrected.
	ErrDuplicateAllocation = errors.New("allocation already exists for this lot and step")
)

// Allocation is a one-time grant of part of a lot's quantity to a specific
// step. At most one allocation ever exists per (lot, step) pair, and rows
// are immutable after insert.
type Allocation struct {
	id            kernel.UUID
	lotID         kernel.UUID
	stepID        kernel.UUID
	takenQuantity int
	createdAt     time.Time

	isConstructed bool
}

// NewAllocation grants takenQuantity from a lot to a step. The quantity must
// be positive: zero-take requests are skipped upstream, never recorded.
func NewAllocation(
	id kernel.UUID,
	lotID kernel.UUID,
	stepID kernel.UUID,
	takenQuantity int,
	now time.Time,
) (*Allocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := lotID.Validate(); err != nil {
		return nil, err
	}
	if err := stepID.Validate(); err != nil {
		return nil, err
	}
	if takenQuantity <= 0 {
		return nil, ErrNegativeQuantity
	}

	return &Allocation{
		id:            id,
		lotID:         lotID,
		stepID:        stepID,
		takenQuantity: takenQuantity,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreAllocation reconstructs an allocation from persistence.
func RestoreAllocation(
	id kernel.UUID,
	lotID kernel.UUID,
	stepID kernel.UUID,
	takenQuantity int,
	createdAt time.Time,
) (*Allocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Allocation{
		id:            id,
		lotID:         lotID,
		stepID:        stepID,
		takenQuantity: takenQuantity,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Allocation instance was properly constructed.
func (a *Allocation) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAllocationIsNotConstructed
	}
	return nil
}

func (a *Allocation) ID() kernel.UUID      { return a.id }
func (a *Allocation) LotID() kernel.UUID   { return a.lotID }
func (a *Allocation) StepID() kernel.UUID  { return a.stepID }
func (a *Allocation) TakenQuantity() int   { return a.takenQuantity }
func (a *Allocation) CreatedAt() time.Time { return a.createdAt }

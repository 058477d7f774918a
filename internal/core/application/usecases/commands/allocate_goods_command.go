package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrAllocateGoodsCommandIsNotConstructed = errors.New(
	"AllocateGoodsCommand must be created via NewAllocateGoodsCommand constructor",
)

// AllocationRequest asks for a quantity from one lot. Over-asking is
// clamped to the lot's remaining quantity, never rejected.
type AllocationRequest struct {
	LotID    kernel.UUID
	Quantity int
}

// AllocateGoodsCommand represents a batch of allocation requests against
// one workflow step. Each lot is granted at most once per step; skipped
// lots never fail the batch.
type AllocateGoodsCommand struct { //nolint:recvcheck //using for validation
	stepID   kernel.UUID
	requests []AllocationRequest

	guard guard.ConstructorGuard
}

// NewAllocateGoodsCommand creates a command to allocate goods to a step.
// At least one request is required; negative quantities are rejected here,
// before any lot is looked at.
func NewAllocateGoodsCommand(
	stepID kernel.UUID,
	requests []AllocationRequest,
) (AllocateGoodsCommand, error) {
	cmd := AllocateGoodsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setRequests(requests),
	); err != nil {
		return AllocateGoodsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateGoodsCommand) Validate() error {
	return c.guard.Validate(ErrAllocateGoodsCommandIsNotConstructed)
}

// StepID returns the step receiving the allocations.
func (c AllocateGoodsCommand) StepID() kernel.UUID {
	return c.stepID
}

// Requests returns the per-lot allocation requests.
func (c AllocateGoodsCommand) Requests() []AllocationRequest {
	return c.requests
}

func (c *AllocateGoodsCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}

	c.stepID = stepID
	return nil
}

func (c *AllocateGoodsCommand) setRequests(requests []AllocationRequest) error {
	if len(requests) == 0 {
		return errs.NewValueIsRequiredError("requests")
	}
	for _, req := range requests {
		if err := req.LotID.Validate(); err != nil {
			return err
		}
		if req.Quantity < 0 {
			return errs.NewValueIsInvalidError("quantity")
		}
	}

	c.requests = requests
	return nil
}

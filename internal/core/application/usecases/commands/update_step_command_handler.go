package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/core/domain/services/sequencing"
	"shiptrack/internal/core/domain/services/workflow"
	"shiptrack/internal/core/ports"
)

// ErrShipmentIsCancelled rejects edits on steps of a cancelled shipment.
var ErrShipmentIsCancelled = errors.New("shipment is cancelled")

// UpdateStepCommandHandler applies one step edit end to end: merge the
// field patch, run the workflow's sequencing rules against the full step
// set, recompute step statuses from field completeness, and refresh the
// shipment's derived status, risk and alerts. A sequencing violation
// rejects the whole edit; nothing is persisted.
type UpdateStepCommandHandler struct {
	uowFactory TrackingUoWFactory
	workflows  *workflow.Registry
	refresher  derivedRefresher
}

// NewUpdateStepCommandHandler creates a handler for step edits.
func NewUpdateStepCommandHandler(
	uowFactory TrackingUoWFactory,
	workflows *workflow.Registry,
	directory ports.UserDirectory,
) UpdateStepCommandHandler {
	return UpdateStepCommandHandler{
		uowFactory: uowFactory,
		workflows:  workflows,
		refresher:  newDerivedRefresher(directory),
	}
}

// Handle processes the step edit command. A manual status in the command
// wins over the recomputed status, but only for the edited step.
func (h *UpdateStepCommandHandler) Handle(ctx context.Context, cmd UpdateStepCommand) error {
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

	target, err := uow.StepRepository().Get(ctx, cmd.StepID())
	if err != nil {
		return err
	}

	aggregate, err := uow.ShipmentRepository().Get(ctx, target.ShipmentID())
	if err != nil {
		return err
	}
	if aggregate.IsCancelled() {
		return ErrShipmentIsCancelled
	}

	steps, err := uow.StepRepository().GetAllByShipmentID(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	// Re-point target at its instance in the full list so evaluator and
	// aggregator see the patched fields.
	for _, s := range steps {
		if s.ID() == target.ID() {
			target = s
			break
		}
	}

	target.MergeFields(cmd.FieldsPatch())
	target.RemoveFields(cmd.RemovePaths())
	if cmd.Notes() != nil {
		target.SetNotes(*cmd.Notes())
	}

	changed, err := h.applySequencing(aggregate.WorkflowCode(), steps, target, cmd.ManualStatus(), now)
	if err != nil {
		return err
	}
	changed[target.ID().String()] = true

	stepRepo := uow.StepRepository()
	for _, s := range steps {
		if !changed[s.ID().String()] {
			continue
		}
		if err = stepRepo.Update(ctx, s); err != nil {
			return err
		}
	}

	if err = h.refresher.refresh(ctx, uow, aggregate, steps, now, false); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// applySequencing validates the patched snapshot against the workflow's
// ordering rules and folds the recomputed statuses back into the steps.
// Returns the set of step IDs whose status moved.
func (h *UpdateStepCommandHandler) applySequencing(
	workflowCode string,
	steps []*step.Step,
	target *step.Step,
	manualStatus *step.Status,
	now time.Time,
) (map[string]bool, error) {
	changed := make(map[string]bool, len(steps))

	evaluator, ok := h.workflows.Evaluator(workflowCode)
	if ok {
		snapshot := make(sequencing.Snapshot, len(steps))
		for _, s := range steps {
			snapshot[s.Name()] = sequencing.StepFields{ID: s.ID(), Fields: s.Fields()}
		}

		if err := evaluator.Validate(snapshot); err != nil {
			return nil, err
		}

		statuses := evaluator.Recompute(snapshot)
		for _, s := range steps {
			// The manual status wins outright for the edited step. Applying
			// the computed value first would leak its transition side
			// effects, stamping completed_at or clearing the SLA deadline.
			if manualStatus != nil && s.ID() == target.ID() {
				continue
			}
			next, governed := statuses[s.ID()]
			if !governed || next == s.Status() {
				continue
			}
			if err := s.ChangeStatus(next, now); err != nil {
				return nil, err
			}
			changed[s.ID().String()] = true
		}
	}

	if manualStatus != nil && *manualStatus != target.Status() {
		if err := target.ChangeStatus(*manualStatus, now); err != nil {
			return nil, err
		}
		changed[target.ID().String()] = true
	}

	return changed, nil
}

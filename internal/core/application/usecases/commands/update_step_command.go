package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/pkg/guard"
)

var ErrUpdateStepCommandIsNotConstructed = errors.New(
	"UpdateStepCommand must be created via NewUpdateStepCommand constructor",
)

// UpdateStepCommand represents one edit of a workflow step: a field patch,
// field removals, an optional manual status override and an optional notes
// replacement. All parts are applied in a single transaction or not at all.
type UpdateStepCommand struct { //nolint:recvcheck //using for validation
	stepID       kernel.UUID
	fieldsPatch  fieldtree.Tree
	removePaths  [][]string
	manualStatus *step.Status
	notes        *string

	guard guard.ConstructorGuard
}

// NewUpdateStepCommand creates a command to edit a step. A nil fieldsPatch
// means no field changes; a nil manualStatus keeps the derived status.
func NewUpdateStepCommand(
	stepID kernel.UUID,
	fieldsPatch fieldtree.Tree,
	removePaths [][]string,
	manualStatus *step.Status,
	notes *string,
) (UpdateStepCommand, error) {
	cmd := UpdateStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setManualStatus(manualStatus),
	); err != nil {
		return UpdateStepCommand{}, err
	}

	cmd.fieldsPatch = fieldsPatch
	cmd.removePaths = removePaths
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStepCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStepCommandIsNotConstructed)
}

// StepID returns the step being edited.
func (c UpdateStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// FieldsPatch returns the tree merged into the step's fields.
func (c UpdateStepCommand) FieldsPatch() fieldtree.Tree {
	return c.fieldsPatch
}

// RemovePaths returns the field paths deleted from the step's fields.
func (c UpdateStepCommand) RemovePaths() [][]string {
	return c.removePaths
}

// ManualStatus returns the explicit status override, if any. A manual
// status on the edited step wins over the recomputed one.
func (c UpdateStepCommand) ManualStatus() *step.Status {
	return c.manualStatus
}

// Notes returns the replacement notes text, if any.
func (c UpdateStepCommand) Notes() *string {
	return c.notes
}

func (c *UpdateStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}

	c.stepID = stepID
	return nil
}

func (c *UpdateStepCommand) setManualStatus(manualStatus *step.Status) error {
	if manualStatus != nil {
		if err := manualStatus.Validate(); err != nil {
			return err
		}
	}

	c.manualStatus = manualStatus
	return nil
}

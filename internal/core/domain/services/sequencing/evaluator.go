// Package sequencing contains the workflow-specific ordering rules: pure
// evaluators that reject out-of-order data entry and recompute step statuses
// from field completeness instead of trusting caller-supplied status.
//
// Two evaluator shapes exist. RowChain enforces a per-row predecessor chain
// across parallel repeatable groups (row i of a later step may only carry
// data once row i of the earlier step is done). CheckpointChain walks ordered
// stages per region and clamps everything after the first gap to Pending.
//
// Evaluators are registered per workflow code; adding a workflow variant is
// a new registration, never a new branch in calling code.
package sequencing

import (
	"errors"
	"fmt"

	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/step"
)

// ReasonTrackingSequence is the stable rejection code calling UI layers
// translate to human text. This core never renders text itself.
const ReasonTrackingSequence = "tracking_sequence"

// ErrSequenceViolation is the sentinel for all ordering rejections.
var ErrSequenceViolation = errors.New("sequencing rule violated")

// ViolationError rejects a write that would enter dependent data before its
// predecessor is complete. No partial persistence happens on a violation.
type ViolationError struct {
	ReasonCode string
	StepName   string
	RowIndex   int
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: step %q row %d entered before its predecessor is done",
		e.ReasonCode, e.StepName, e.RowIndex)
}

func (e *ViolationError) Unwrap() error {
	return ErrSequenceViolation
}

// StepFields is the evaluator's view of one step: identity plus field tree.
type StepFields struct {
	ID     kernel.UUID
	Fields fieldtree.Tree
}

// Snapshot is the full set of a shipment's steps keyed by step name.
// Evaluators only ever read it.
type Snapshot map[string]StepFields

// Evaluator is a workflow-specific sequencing rule set.
type Evaluator interface {
	// Validate rejects the snapshot when dependent data precedes its
	// predecessor. A nil error means the write may proceed.
	Validate(s Snapshot) error

	// Recompute derives step statuses from field completeness. Steps not
	// governed by the evaluator are absent from the result.
	Recompute(s Snapshot) map[kernel.UUID]step.Status
}

// Registry resolves the evaluator for a workflow code. Workflows without a
// registered evaluator have no sequencing rules: edits pass through with
// caller-supplied statuses.
type Registry struct {
	evaluators map[string]Evaluator
}

// NewRegistry creates an empty evaluator registry.
func NewRegistry() *Registry {
	return &Registry{evaluators: make(map[string]Evaluator)}
}

// Register binds an evaluator to a workflow code, replacing any previous binding.
func (r *Registry) Register(workflowCode string, ev Evaluator) {
	r.evaluators[workflowCode] = ev
}

// Lookup returns the evaluator for a workflow code, if one is registered.
func (r *Registry) Lookup(workflowCode string) (Evaluator, bool) {
	ev, ok := r.evaluators[workflowCode]
	return ev, ok
}

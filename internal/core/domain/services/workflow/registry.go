// Package workflow defines workflow templates (the ordered step lists a
// shipment is instantiated from) and binds each workflow code to its
// sequencing evaluator. Registering a new workflow variant is additive:
// one template plus, optionally, one evaluator.
package workflow

import (
	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/services/sequencing"
)

// Codes of the built-in workflow variants.
const (
	CodeImportClearance   = "import_clearance"
	CodeMultiBorderExport = "multi_border_export"
)

// StepDefinition is the blueprint for one step of a template.
type StepDefinition struct {
	Name            string
	OwnerRole       string
	SLAHours        *int
	CustomerVisible bool
	IsExternal      bool
	Schema          fieldtree.Tree
}

// Template is the blueprint a shipment's steps are instantiated from.
// Step order in Steps is the sequence order.
type Template struct {
	Code  string
	Steps []StepDefinition
}

// Registry resolves templates and sequencing evaluators by workflow code.
type Registry struct {
	templates  map[string]Template
	evaluators *sequencing.Registry
}

// NewRegistry creates an empty workflow registry.
func NewRegistry() *Registry {
	return &Registry{
		templates:  make(map[string]Template),
		evaluators: sequencing.NewRegistry(),
	}
}

// RegisterTemplate adds or replaces a template.
func (r *Registry) RegisterTemplate(t Template) {
	r.templates[t.Code] = t
}

// RegisterEvaluator binds a sequencing evaluator to a workflow code.
func (r *Registry) RegisterEvaluator(code string, ev sequencing.Evaluator) {
	r.evaluators.Register(code, ev)
}

// Template returns the template for a workflow code.
func (r *Registry) Template(code string) (Template, bool) {
	t, ok := r.templates[code]
	return t, ok
}

// Evaluator returns the sequencing evaluator for a workflow code. Workflows
// without one have no ordering rules.
func (r *Registry) Evaluator(code string) (sequencing.Evaluator, bool) {
	return r.evaluators.Lookup(code)
}

// CurrentLane returns the active region for display when the workflow is a
// checkpoint chain. The second result is false for other workflow shapes.
func (r *Registry) CurrentLane(code string, s sequencing.Snapshot) (string, bool) {
	ev, ok := r.evaluators.Lookup(code)
	if !ok {
		return "", false
	}
	chain, ok := ev.(*sequencing.CheckpointChain)
	if !ok {
		return "", false
	}
	return chain.CurrentLane(s), true
}

// StepStages returns the gap-clamped stage display for the region carried by
// the named step. The second result is false for workflow shapes without
// checkpoint stages and for steps that carry no region.
func (r *Registry) StepStages(code string, s sequencing.Snapshot, stepName string) ([]sequencing.StageState, bool) {
	ev, ok := r.evaluators.Lookup(code)
	if !ok {
		return nil, false
	}
	chain, ok := ev.(*sequencing.CheckpointChain)
	if !ok {
		return nil, false
	}
	states := chain.StepStages(s, stepName)
	return states, states != nil
}

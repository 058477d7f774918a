package sequencing

import (
	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/pkg/errs"
)

// RowRule declares that a row of Later may only carry data once the same
// row of Earlier is marked done. Row identity is positional: row i in one
// step's group corresponds to row i in another's, both built from the same
// canonical unit list.
type RowRule struct {
	Later   string
	Earlier string
}

// RowChainConfig describes one row-wise predecessor chain.
type RowChainConfig struct {
	// Steps is the ordered list of step names governed by the chain.
	Steps []string

	// UnitSourceStep is the step whose repeatable group defines the
	// canonical ordered unit list (e.g. the container manifest).
	UnitSourceStep string

	// GroupKey is the repeatable-group key inside each step's field tree.
	GroupKey string

	// UnitKey names the unit identifier field inside each row. It never
	// counts as entered data on its own.
	UnitKey string

	// DoneKey is the per-row completion flag.
	DoneKey string

	// Rules are the predecessor constraints checked on every validation.
	Rules []RowRule
}

// RowChain enforces a per-row predecessor chain, e.g. an import-clearance
// workflow where customs work on container i must not start before
// container i has been pulled out.
type RowChain struct {
	cfg RowChainConfig
}

// NewRowChain creates a RowChain evaluator. Every rule must reference steps
// listed in cfg.Steps.
func NewRowChain(cfg RowChainConfig) (*RowChain, error) {
	if len(cfg.Steps) == 0 {
		return nil, errs.NewValueIsRequiredError("steps")
	}
	if cfg.GroupKey == "" {
		return nil, errs.NewValueIsRequiredError("groupKey")
	}
	if cfg.DoneKey == "" {
		return nil, errs.NewValueIsRequiredError("doneKey")
	}

	known := make(map[string]bool, len(cfg.Steps))
	for _, name := range cfg.Steps {
		known[name] = true
	}
	if !known[cfg.UnitSourceStep] {
		return nil, errs.NewValueIsInvalidError("unitSourceStep")
	}
	for _, rule := range cfg.Rules {
		if !known[rule.Later] || !known[rule.Earlier] {
			return nil, errs.NewValueIsInvalidError("rules")
		}
	}

	return &RowChain{cfg: cfg}, nil
}

// Validate rejects the snapshot when any rule finds a row with later-step
// data whose earlier-step row is not done.
func (c *RowChain) Validate(s Snapshot) error {
	units := c.unitCount(s)
	for _, rule := range c.Rules() {
		for i := 0; i < units; i++ {
			laterRow := c.row(s, rule.Later, i)
			earlierRow := c.row(s, rule.Earlier, i)

			if c.rowHasData(laterRow) && !c.rowDone(earlierRow) {
				return &ViolationError{
					ReasonCode: ReasonTrackingSequence,
					StepName:   rule.Later,
					RowIndex:   i,
				}
			}
		}
	}
	return nil
}

// Recompute derives each chain step's status from its rows: Done when every
// row is done, InProgress when any row is touched, Pending otherwise.
func (c *RowChain) Recompute(s Snapshot) map[kernel.UUID]step.Status {
	units := c.unitCount(s)
	statuses := make(map[kernel.UUID]step.Status, len(c.cfg.Steps))

	for _, name := range c.cfg.Steps {
		fields, ok := s[name]
		if !ok {
			continue
		}
		statuses[fields.ID] = c.stepStatus(s, name, units)
	}
	return statuses
}

// Rules exposes the configured predecessor constraints.
func (c *RowChain) Rules() []RowRule {
	return c.cfg.Rules
}

func (c *RowChain) stepStatus(s Snapshot, name string, units int) step.Status {
	if units == 0 {
		return step.Pending
	}

	allDone := true
	anyTouched := false
	for i := 0; i < units; i++ {
		row := c.row(s, name, i)
		if !c.rowDone(row) {
			allDone = false
		}
		if c.rowDone(row) || c.rowHasData(row) {
			anyTouched = true
		}
	}

	switch {
	case allDone:
		return step.Done
	case anyTouched:
		return step.InProgress
	default:
		return step.Pending
	}
}

// unitCount is the length of the canonical unit list, taken from the unit
// source step's repeatable group.
func (c *RowChain) unitCount(s Snapshot) int {
	source, ok := s[c.cfg.UnitSourceStep]
	if !ok {
		return 0
	}
	return len(source.Fields.Rows(c.cfg.GroupKey))
}

// row returns row i of a step's group, zero-filled when the step has fewer
// rows than the canonical unit list.
func (c *RowChain) row(s Snapshot, stepName string, i int) fieldtree.Tree {
	fields, ok := s[stepName]
	if !ok {
		return fieldtree.Tree{}
	}
	return fields.Fields.Row(c.cfg.GroupKey, i)
}

// rowHasData reports whether the row carries any entered value besides the
// unit identifier.
func (c *RowChain) rowHasData(row fieldtree.Tree) bool {
	for key, value := range row {
		if key == c.cfg.UnitKey {
			continue
		}
		if !fieldtree.IsEmptyValue(value) {
			return true
		}
	}
	return false
}

func (c *RowChain) rowDone(row fieldtree.Tree) bool {
	return row.Bool(c.cfg.DoneKey)
}

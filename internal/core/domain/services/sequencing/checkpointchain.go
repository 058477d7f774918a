package sequencing

import (
	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/pkg/errs"
)

// StageKind distinguishes the two gate types of a checkpoint chain.
type StageKind int

const (
	// StageCheckpoint is done when its boolean flag is set or its date
	// field is populated.
	StageCheckpoint StageKind = iota

	// StageCustoms is done when its date field is populated. Customs
	// stages are ordered for display but do not gate region completion.
	StageCustoms
)

// Stage is one gate inside a region's ordered stage list.
type Stage struct {
	Name    string
	Kind    StageKind
	FlagKey string // checkpoint stages only
	DateKey string
}

// Region is an ordered stage list mapped onto one workflow step. The step's
// field tree holds all of the region's flags and dates.
type Region struct {
	Name     string
	StepName string
	Stages   []Stage
}

// CheckpointChainConfig describes one multi-region checkpoint chain.
type CheckpointChainConfig struct {
	Regions []Region
}

// StageState is the display status of one stage after gap clamping.
type StageState struct {
	Name   string
	Status step.Status
}

// CheckpointChain walks each region's stages in order. Once a stage is found
// that is not done, every later stage in that region is clamped to Pending:
// an earlier gap blocks credit for later entries, so a user cannot mark
// stage 5 complete while stage 2 is still open.
type CheckpointChain struct {
	cfg CheckpointChainConfig
}

// NewCheckpointChain creates a CheckpointChain evaluator.
func NewCheckpointChain(cfg CheckpointChainConfig) (*CheckpointChain, error) {
	if len(cfg.Regions) == 0 {
		return nil, errs.NewValueIsRequiredError("regions")
	}
	for _, region := range cfg.Regions {
		if region.StepName == "" {
			return nil, errs.NewValueIsRequiredError("region stepName")
		}
		if len(region.Stages) == 0 {
			return nil, errs.NewValueIsRequiredError("region stages")
		}
	}
	return &CheckpointChain{cfg: cfg}, nil
}

// Validate always passes: checkpoint chains clamp instead of rejecting.
func (c *CheckpointChain) Validate(Snapshot) error {
	return nil
}

// Recompute derives each region step's status: Done when every checkpoint
// stage is done, InProgress when any checkpoint stage is touched, else
// Pending.
func (c *CheckpointChain) Recompute(s Snapshot) map[kernel.UUID]step.Status {
	statuses := make(map[kernel.UUID]step.Status, len(c.cfg.Regions))
	for _, region := range c.cfg.Regions {
		fields, ok := s[region.StepName]
		if !ok {
			continue
		}
		statuses[fields.ID] = regionStatus(region, fields.Fields)
	}
	return statuses
}

// StageStates returns the gap-clamped display status of every stage in the
// named region. Returns nil for an unknown region.
func (c *CheckpointChain) StageStates(s Snapshot, regionName string) []StageState {
	for _, region := range c.cfg.Regions {
		if region.Name != regionName {
			continue
		}
		fields := fieldtree.Tree{}
		if sf, ok := s[region.StepName]; ok {
			fields = sf.Fields
		}
		return stageWalk(region, fields)
	}
	return nil
}

// StepStages returns the stage display for the region mapped onto the named
// step. Returns nil when no region is carried by that step.
func (c *CheckpointChain) StepStages(s Snapshot, stepName string) []StageState {
	for _, region := range c.cfg.Regions {
		if region.StepName != stepName {
			continue
		}
		fields := fieldtree.Tree{}
		if sf, ok := s[region.StepName]; ok {
			fields = sf.Fields
		}
		return stageWalk(region, fields)
	}
	return nil
}

// CurrentLane is the region to show as active: the first region not Done
// (first InProgress, else first Pending), or the last region when every
// region is Done.
func (c *CheckpointChain) CurrentLane(s Snapshot) string {
	firstPending := ""
	for _, region := range c.cfg.Regions {
		fields := fieldtree.Tree{}
		if sf, ok := s[region.StepName]; ok {
			fields = sf.Fields
		}
		switch regionStatus(region, fields) {
		case step.InProgress:
			return region.Name
		case step.Pending:
			if firstPending == "" {
				firstPending = region.Name
			}
		default:
		}
	}
	if firstPending != "" {
		return firstPending
	}
	return c.cfg.Regions[len(c.cfg.Regions)-1].Name
}

// stageWalk assigns statuses in stage order. The first not-done stage is
// InProgress when touched, Pending otherwise; everything after it is
// clamped to Pending regardless of its own fields.
func stageWalk(region Region, fields fieldtree.Tree) []StageState {
	states := make([]StageState, len(region.Stages))
	gapSeen := false

	for i, stage := range region.Stages {
		switch {
		case gapSeen:
			states[i] = StageState{Name: stage.Name, Status: step.Pending}
		case stageDone(stage, fields):
			states[i] = StageState{Name: stage.Name, Status: step.Done}
		case stageTouched(stage, fields):
			states[i] = StageState{Name: stage.Name, Status: step.InProgress}
			gapSeen = true
		default:
			states[i] = StageState{Name: stage.Name, Status: step.Pending}
			gapSeen = true
		}
	}
	return states
}

// regionStatus ignores customs stages: they are ordered for display but do
// not gate the region.
func regionStatus(region Region, fields fieldtree.Tree) step.Status {
	allDone := true
	anyTouched := false
	for _, stage := range region.Stages {
		if stage.Kind != StageCheckpoint {
			continue
		}
		if stageDone(stage, fields) {
			anyTouched = true
		} else {
			allDone = false
			if stageTouched(stage, fields) {
				anyTouched = true
			}
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

func stageDone(stage Stage, fields fieldtree.Tree) bool {
	if stage.Kind == StageCustoms {
		return fields.String(stage.DateKey) != ""
	}
	return fields.Bool(stage.FlagKey) || fields.String(stage.DateKey) != ""
}

func stageTouched(stage Stage, fields fieldtree.Tree) bool {
	if stage.FlagKey != "" && fields.Bool(stage.FlagKey) {
		return true
	}
	return fields.String(stage.DateKey) != ""
}

package workflow

import (
	"fmt"

	"shiptrack/internal/core/domain/services/sequencing"
)

func intPtr(v int) *int { return &v }

// importClearanceTemplate is the inbound sea freight clearance flow. The
// manifest step lists the containers of the shipment; every later step
// tracks the same containers row by row.
func importClearanceTemplate() Template {
	return Template{
		Code: CodeImportClearance,
		Steps: []StepDefinition{
			{Name: "container_manifest", OwnerRole: "ops", CustomerVisible: true},
			{Name: "discharge", OwnerRole: "port_agent", SLAHours: intPtr(48), IsExternal: true},
			{Name: "pull_out", OwnerRole: "trucking", SLAHours: intPtr(24), IsExternal: true},
			{Name: "customs_clearance", OwnerRole: "broker", SLAHours: intPtr(72), CustomerVisible: true},
			{Name: "yard_release", OwnerRole: "ops", SLAHours: intPtr(24)},
			{Name: "delivery", OwnerRole: "trucking", SLAHours: intPtr(48), CustomerVisible: true, IsExternal: true},
		},
	}
}

func importClearanceEvaluator() (*sequencing.RowChain, error) {
	return sequencing.NewRowChain(sequencing.RowChainConfig{
		Steps: []string{
			"container_manifest", "discharge", "pull_out",
			"customs_clearance", "yard_release", "delivery",
		},
		UnitSourceStep: "container_manifest",
		GroupKey:       "containers",
		UnitKey:        "container_no",
		DoneKey:        "done",
		Rules: []sequencing.RowRule{
			{Later: "pull_out", Earlier: "discharge"},
			{Later: "customs_clearance", Earlier: "pull_out"},
			{Later: "yard_release", Earlier: "customs_clearance"},
			{Later: "delivery", Earlier: "yard_release"},
		},
	})
}

// multiBorderExportTemplate is the overland export flow through two border
// crossings. Each leg step carries the checkpoint flags and customs dates
// of its region.
func multiBorderExportTemplate() Template {
	return Template{
		Code: CodeMultiBorderExport,
		Steps: []StepDefinition{
			{Name: "origin_leg", OwnerRole: "ops", SLAHours: intPtr(48), CustomerVisible: true},
			{Name: "transit_leg", OwnerRole: "forwarder", SLAHours: intPtr(96), IsExternal: true, CustomerVisible: true},
			{Name: "destination_leg", OwnerRole: "forwarder", SLAHours: intPtr(72), IsExternal: true, CustomerVisible: true},
		},
	}
}

func multiBorderExportEvaluator() (*sequencing.CheckpointChain, error) {
	return sequencing.NewCheckpointChain(sequencing.CheckpointChainConfig{
		Regions: []sequencing.Region{
			{
				Name:     "origin",
				StepName: "origin_leg",
				Stages: []sequencing.Stage{
					{Name: "loading", Kind: sequencing.StageCheckpoint, FlagKey: "loading_done", DateKey: "loading_date"},
					{Name: "export_customs", Kind: sequencing.StageCustoms, DateKey: "export_customs_date"},
					{Name: "border_exit", Kind: sequencing.StageCheckpoint, FlagKey: "border_exit_done", DateKey: "border_exit_date"},
				},
			},
			{
				Name:     "transit",
				StepName: "transit_leg",
				Stages: []sequencing.Stage{
					{Name: "border_entry", Kind: sequencing.StageCheckpoint, FlagKey: "border_entry_done", DateKey: "border_entry_date"},
					{Name: "transit_customs", Kind: sequencing.StageCustoms, DateKey: "transit_customs_date"},
					{Name: "border_exit", Kind: sequencing.StageCheckpoint, FlagKey: "border_exit_done", DateKey: "border_exit_date"},
				},
			},
			{
				Name:     "destination",
				StepName: "destination_leg",
				Stages: []sequencing.Stage{
					{Name: "border_entry", Kind: sequencing.StageCheckpoint, FlagKey: "border_entry_done", DateKey: "border_entry_date"},
					{Name: "import_customs", Kind: sequencing.StageCustoms, DateKey: "import_customs_date"},
					{Name: "unloading", Kind: sequencing.StageCheckpoint, FlagKey: "unloading_done", DateKey: "unloading_date"},
					{Name: "handover", Kind: sequencing.StageCheckpoint, FlagKey: "handover_done", DateKey: "handover_date"},
				},
			},
		},
	})
}

// NewDefaultRegistry creates a registry with the built-in workflow variants.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()

	r.RegisterTemplate(importClearanceTemplate())
	rowChain, err := importClearanceEvaluator()
	if err != nil {
		return nil, fmt.Errorf("build %s evaluator: %w", CodeImportClearance, err)
	}
	r.RegisterEvaluator(CodeImportClearance, rowChain)

	r.RegisterTemplate(multiBorderExportTemplate())
	checkpointChain, err := multiBorderExportEvaluator()
	if err != nil {
		return nil, fmt.Errorf("build %s evaluator: %w", CodeMultiBorderExport, err)
	}
	r.RegisterEvaluator(CodeMultiBorderExport, checkpointChain)

	return r, nil
}

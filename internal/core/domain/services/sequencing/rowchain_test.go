package sequencing_test

import (
	"testing"

	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/core/domain/services/sequencing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImportChain(t *testing.T) *sequencing.RowChain {
	t.Helper()
	chain, err := sequencing.NewRowChain(sequencing.RowChainConfig{
		Steps:          []string{"container_manifest", "discharge", "pull_out"},
		UnitSourceStep: "container_manifest",
		GroupKey:       "containers",
		UnitKey:        "container_no",
		DoneKey:        "done",
		Rules: []sequencing.RowRule{
			{Later: "pull_out", Earlier: "discharge"},
		},
	})
	require.NoError(t, err)
	return chain
}

func stepFields(rows ...fieldtree.Tree) sequencing.StepFields {
	tree := fieldtree.New()
	if len(rows) > 0 {
		tree["containers"] = rows
	}
	return sequencing.StepFields{ID: kernel.NewUUID(), Fields: tree}
}

func manifestRows(containerNos ...string) []fieldtree.Tree {
	rows := make([]fieldtree.Tree, len(containerNos))
	for i, no := range containerNos {
		rows[i] = fieldtree.Tree{"container_no": no}
	}
	return rows
}

func Test_NewRowChain(t *testing.T) {
	t.Run("rejects empty step list", func(t *testing.T) {
		_, err := sequencing.NewRowChain(sequencing.RowChainConfig{
			GroupKey: "containers", DoneKey: "done",
		})
		assert.Error(t, err)
	})

	t.Run("rejects rule referencing unknown step", func(t *testing.T) {
		_, err := sequencing.NewRowChain(sequencing.RowChainConfig{
			Steps:          []string{"container_manifest", "discharge"},
			UnitSourceStep: "container_manifest",
			GroupKey:       "containers",
			DoneKey:        "done",
			Rules:          []sequencing.RowRule{{Later: "delivery", Earlier: "discharge"}},
		})
		assert.Error(t, err)
	})

	t.Run("rejects unit source outside step list", func(t *testing.T) {
		_, err := sequencing.NewRowChain(sequencing.RowChainConfig{
			Steps:          []string{"discharge"},
			UnitSourceStep: "container_manifest",
			GroupKey:       "containers",
			DoneKey:        "done",
		})
		assert.Error(t, err)
	})
}

func Test_RowChain_Validate(t *testing.T) {
	chain := newImportChain(t)

	t.Run("rejects later row entered before earlier row is done", func(t *testing.T) {
		snap := sequencing.Snapshot{
			"container_manifest": stepFields(manifestRows("MSKU100", "MSKU200")...),
			"discharge": stepFields(
				fieldtree.Tree{"container_no": "MSKU100", "discharge_date": "2024-05-01"},
				fieldtree.Tree{"container_no": "MSKU200"},
			),
			"pull_out": stepFields(
				fieldtree.Tree{"container_no": "MSKU100", "truck_no": "TRK-7"},
			),
		}

		err := chain.Validate(snap)
		require.Error(t, err)
		assert.ErrorIs(t, err, sequencing.ErrSequenceViolation)

		var violation *sequencing.ViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, sequencing.ReasonTrackingSequence, violation.ReasonCode)
		assert.Equal(t, "pull_out", violation.StepName)
		assert.Equal(t, 0, violation.RowIndex)
	})

	t.Run("accepts same data once earlier row is done", func(t *testing.T) {
		snap := sequencing.Snapshot{
			"container_manifest": stepFields(manifestRows("MSKU100", "MSKU200")...),
			"discharge": stepFields(
				fieldtree.Tree{"container_no": "MSKU100", "discharge_date": "2024-05-01", "done": true},
				fieldtree.Tree{"container_no": "MSKU200"},
			),
			"pull_out": stepFields(
				fieldtree.Tree{"container_no": "MSKU100", "truck_no": "TRK-7"},
			),
		}

		assert.NoError(t, chain.Validate(snap))
	})

	t.Run("rows only constrain their own index", func(t *testing.T) {
		snap := sequencing.Snapshot{
			"container_manifest": stepFields(manifestRows("MSKU100", "MSKU200")...),
			"discharge": stepFields(
				fieldtree.Tree{"container_no": "MSKU100"},
				fieldtree.Tree{"container_no": "MSKU200", "done": true},
			),
			"pull_out": stepFields(
				fieldtree.Tree{"container_no": "MSKU100"},
				fieldtree.Tree{"container_no": "MSKU200", "truck_no": "TRK-2"},
			),
		}

		assert.NoError(t, chain.Validate(snap))
	})

	t.Run("unit identifier alone does not count as entered data", func(t *testing.T) {
		snap := sequencing.Snapshot{
			"container_manifest": stepFields(manifestRows("MSKU100")...),
			"discharge":          stepFields(),
			"pull_out": stepFields(
				fieldtree.Tree{"container_no": "MSKU100"},
			),
		}

		assert.NoError(t, chain.Validate(snap))
	})

	t.Run("empty values do not count as entered data", func(t *testing.T) {
		snap := sequencing.Snapshot{
			"container_manifest": stepFields(manifestRows("MSKU100")...),
			"discharge":          stepFields(),
			"pull_out": stepFields(
				fieldtree.Tree{"container_no": "MSKU100", "truck_no": "", "done": false},
			),
		}

		assert.NoError(t, chain.Validate(snap))
	})

	t.Run("empty snapshot passes", func(t *testing.T) {
		assert.NoError(t, chain.Validate(sequencing.Snapshot{}))
	})
}

func Test_RowChain_Recompute(t *testing.T) {
	chain := newImportChain(t)

	t.Run("no units keeps every step pending", func(t *testing.T) {
		manifest := stepFields()
		discharge := stepFields()
		snap := sequencing.Snapshot{
			"container_manifest": manifest,
			"discharge":          discharge,
		}

		statuses := chain.Recompute(snap)
		assert.Equal(t, step.Pending, statuses[manifest.ID])
		assert.Equal(t, step.Pending, statuses[discharge.ID])
	})

	t.Run("all rows done makes the step done", func(t *testing.T) {
		manifest := stepFields(manifestRows("MSKU100", "MSKU200")...)
		discharge := stepFields(
			fieldtree.Tree{"container_no": "MSKU100", "done": true},
			fieldtree.Tree{"container_no": "MSKU200", "done": true},
		)
		snap := sequencing.Snapshot{
			"container_manifest": manifest,
			"discharge":          discharge,
		}

		statuses := chain.Recompute(snap)
		assert.Equal(t, step.Done, statuses[discharge.ID])
	})

	t.Run("partial data makes the step in progress", func(t *testing.T) {
		manifest := stepFields(manifestRows("MSKU100", "MSKU200")...)
		discharge := stepFields(
			fieldtree.Tree{"container_no": "MSKU100", "discharge_date": "2024-05-01"},
		)
		snap := sequencing.Snapshot{
			"container_manifest": manifest,
			"discharge":          discharge,
		}

		statuses := chain.Recompute(snap)
		assert.Equal(t, step.InProgress, statuses[discharge.ID])
	})

	t.Run("step with fewer rows than units is not done", func(t *testing.T) {
		manifest := stepFields(manifestRows("MSKU100", "MSKU200", "MSKU300")...)
		discharge := stepFields(
			fieldtree.Tree{"container_no": "MSKU100", "done": true},
			fieldtree.Tree{"container_no": "MSKU200", "done": true},
		)
		snap := sequencing.Snapshot{
			"container_manifest": manifest,
			"discharge":          discharge,
		}

		statuses := chain.Recompute(snap)
		assert.Equal(t, step.InProgress, statuses[discharge.ID])
	})

	t.Run("steps absent from the snapshot are not reported", func(t *testing.T) {
		manifest := stepFields(manifestRows("MSKU100")...)
		snap := sequencing.Snapshot{"container_manifest": manifest}

		statuses := chain.Recompute(snap)
		assert.Len(t, statuses, 1)
	})
}

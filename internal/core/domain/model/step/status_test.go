package step_test

import (
	"testing"

	"shiptrack/internal/core/domain/model/step"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, valid := range []step.Status{step.Pending, step.InProgress, step.Done, step.Blocked} {
		assert.NoError(t, valid.Validate(), valid.String())
	}

	require.Error(t, step.Unknown.Validate())
	require.Error(t, step.Status(99).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", step.Pending.String())
	assert.Equal(t, "InProgress", step.InProgress.String())
	assert.Equal(t, "Done", step.Done.String())
	assert.Equal(t, "Blocked", step.Blocked.String())
	assert.Equal(t, "Unknown", step.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	s, err := step.StatusFromString("Done")
	require.NoError(t, err)
	assert.Equal(t, step.Done, s)

	_, err = step.StatusFromString("done")
	require.Error(t, err)

	_, err = step.StatusFromString("Unknown")
	require.Error(t, err)
}

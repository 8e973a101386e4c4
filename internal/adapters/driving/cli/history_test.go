package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

func TestHistoryCmd_Runs(t *testing.T) {
	historyLimit = 0
	history := &mockHistoryService{
		runs: []domain.RunReport{
			{
				ID:        "run-1",
				StartedAt: time.Now(),
				EndedAt:   time.Now().Add(5 * time.Second),
				Results: []domain.StepResult{
					{StepID: "test", Status: domain.StepPassed},
				},
			},
		},
	}
	SetServices(Services{History: history})

	out, err := execute(t, "", "history", "runs")

	require.NoError(t, err)
	assert.Contains(t, out, "passed")
	assert.Contains(t, out, "test:passed")
}

func TestHistoryCmd_RunsEmpty(t *testing.T) {
	historyLimit = 0
	SetServices(Services{History: &mockHistoryService{}})

	out, err := execute(t, "", "history", "runs")

	require.NoError(t, err)
	assert.Contains(t, out, "No recorded runs.")
}

func TestHistoryCmd_Releases(t *testing.T) {
	historyLimit = 0
	history := &mockHistoryService{
		releases: []domain.Release{
			{
				ID:              "rel-1",
				PreviousVersion: domain.Version{Major: 1, Minor: 2, Patch: 3},
				Version:         domain.Version{Major: 1, Minor: 3, Patch: 0},
				Tag:             "v1.3.0",
				Published:       true,
				URL:             "https://github.com/zenith-framework/zenith/releases/tag/v1.3.0",
				CreatedAt:       time.Now(),
			},
		},
	}
	SetServices(Services{History: history})

	out, err := execute(t, "", "history", "releases")

	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3 -> v1.3.0")
	assert.Contains(t, out, "releases/tag/v1.3.0")
}

func TestHistoryCmd_FailedRunOutcome(t *testing.T) {
	historyLimit = 0
	history := &mockHistoryService{
		runs: []domain.RunReport{
			{
				ID:        "run-1",
				StartedAt: time.Now(),
				EndedAt:   time.Now(),
				Failed:    true,
				Results: []domain.StepResult{
					{StepID: "typecheck", Status: domain.StepFailed},
					{StepID: "test", Status: domain.StepSkipped},
				},
			},
		},
	}
	SetServices(Services{History: history})

	out, err := execute(t, "", "history", "runs")

	require.NoError(t, err)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "typecheck:failed test:skipped")
}

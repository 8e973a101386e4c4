package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, startedAt time.Time) *domain.RunReport {
	return &domain.RunReport{
		ID:        id,
		StartedAt: startedAt,
		EndedAt:   startedAt.Add(12 * time.Second),
		Failed:    false,
		Results: []domain.StepResult{
			{StepID: "format", Name: "Format Check", Status: domain.StepPassed, Duration: 2 * time.Second},
			{StepID: "lint", Name: "Lint", Status: domain.StepWarned, ExitCode: 1, Output: "W291 trailing whitespace", Duration: 3 * time.Second},
			{StepID: "test", Name: "Unit Tests", Status: domain.StepPassed, Duration: 7 * time.Second},
		},
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.False(t, got.Failed)
	require.Len(t, got.Results, 3)
	assert.Equal(t, "format", got.Results[0].StepID)
	assert.Equal(t, domain.StepWarned, got.Results[1].Status)
	assert.Equal(t, 1, got.Results[1].ExitCode)
	assert.Equal(t, "W291 trailing whitespace", got.Results[1].Output)
	assert.Equal(t, 7*time.Second, got.Results[2].Duration)
}

func TestStore_GetRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveRun_EmptyID(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveRun(context.Background(), &domain.RunReport{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_SaveRun_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.SaveRun(ctx, run))

	run.Failed = true
	run.Results = run.Results[:1]
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, got.Failed)
	assert.Len(t, got.Results, 1)
}

func TestStore_ListRuns_MostRecentFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		run := sampleRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.SaveRun(ctx, run))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Len(t, runs[0].Results, 3)
}

func TestStore_SaveAndListReleases(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	release := &domain.Release{
		ID:              "rel-1",
		PreviousVersion: domain.Version{Major: 0, Minor: 4, Patch: 2},
		Version:         domain.Version{Major: 0, Minor: 5, Patch: 0},
		Tag:             "v0.5.0",
		CommitHash:      "abc123",
		Published:       true,
		URL:             "https://github.com/zenith-framework/zenith/releases/tag/v0.5.0",
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveRelease(ctx, release))

	releases, err := store.ListReleases(ctx, 10)
	require.NoError(t, err)

	require.Len(t, releases, 1)
	assert.Equal(t, "v0.5.0", releases[0].Tag)
	assert.Equal(t, "0.4.2", releases[0].PreviousVersion.String())
	assert.Equal(t, "0.5.0", releases[0].Version.String())
	assert.True(t, releases[0].Published)
}

func TestStore_Prune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		run := sampleRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.SaveRun(ctx, run))
	}

	require.NoError(t, store.Prune(ctx, 2))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)

	// Step results of pruned runs are cascaded away.
	_, err = store.GetRun(ctx, "run-0")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

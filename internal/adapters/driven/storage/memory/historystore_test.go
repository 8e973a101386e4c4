package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

func TestHistoryStore_SaveAndGetRun(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	report := &domain.RunReport{
		ID:        "run-1",
		StartedAt: time.Now(),
		Results: []domain.StepResult{
			{StepID: "test", Status: domain.StepPassed},
		},
	}
	require.NoError(t, store.SaveRun(ctx, report))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.Len(t, got.Results, 1)
}

func TestHistoryStore_GetRun_NotFound(t *testing.T) {
	store := NewHistoryStore()

	_, err := store.GetRun(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_SaveRun_EmptyID(t *testing.T) {
	store := NewHistoryStore()

	err := store.SaveRun(context.Background(), &domain.RunReport{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_ListRuns_OrderAndLimit(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 4; i++ {
		require.NoError(t, store.SaveRun(ctx, &domain.RunReport{
			ID:        fmt.Sprintf("run-%d", i),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
}

func TestHistoryStore_ListReleases(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 2; i++ {
		require.NoError(t, store.SaveRelease(ctx, &domain.Release{
			ID:        fmt.Sprintf("rel-%d", i),
			Version:   domain.Version{Major: 1, Minor: i, Patch: 0},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	releases, err := store.ListReleases(ctx, 10)
	require.NoError(t, err)

	require.Len(t, releases, 2)
	assert.Equal(t, "rel-1", releases[0].ID)
}

func TestHistoryStore_Prune(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveRun(ctx, &domain.RunReport{
			ID:        fmt.Sprintf("run-%d", i),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	require.NoError(t, store.Prune(ctx, 3))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	_, err = store.GetRun(ctx, "run-0")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

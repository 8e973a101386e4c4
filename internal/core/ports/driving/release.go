package driving

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

// ReleaseOptions control release side effects.
type ReleaseOptions struct {
	// Push pushes the release commit and tag to the remote.
	Push bool

	// Publish creates a forge release for the tag.
	Publish bool

	// Notes is the release notes body for the forge release.
	Notes string
}

// ReleaseService creates release commits, tags, and forge releases.
type ReleaseService interface {
	// Release commits the version bump, tags it, and applies the
	// requested side effects. Returns domain.ErrTagExists before any
	// side effect if the tag is already present.
	Release(ctx context.Context, plan *BumpPlan, opts ReleaseOptions) (*domain.Release, error)
}

// HistoryService exposes recorded runs and releases.
type HistoryService interface {
	// Runs returns recent check runs, most recent first.
	Runs(ctx context.Context, limit int) ([]domain.RunReport, error)

	// Releases returns recent releases, most recent first.
	Releases(ctx context.Context, limit int) ([]domain.Release, error)
}

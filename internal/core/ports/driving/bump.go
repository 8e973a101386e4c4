package driving

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

// BumpRequest describes a requested version bump.
type BumpRequest struct {
	// Part selects which component to bump.
	Part domain.BumpPart

	// Explicit is the exact target version when Part is BumpExplicit.
	Explicit domain.Version

	// Force skips the monotonicity check for explicit versions.
	Force bool

	// AllowDirty permits bumping with uncommitted changes.
	// The caller is expected to have obtained user confirmation.
	AllowDirty bool
}

// BumpPlan is the computed outcome of a bump before any file is touched.
type BumpPlan struct {
	// Current is the version read from the version sources.
	Current domain.Version

	// Next is the version that will be written.
	Next domain.Version

	// Sources are the files that will be rewritten.
	Sources []domain.VersionSource
}

// BumpService manages the project version.
type BumpService interface {
	// Current returns the project's current version.
	Current(ctx context.Context) (domain.Version, error)

	// Plan computes the bump without side effects.
	// Returns domain.ErrVersionNotGreater for a non-advancing explicit
	// version unless the request forces it.
	Plan(ctx context.Context, req BumpRequest) (*BumpPlan, error)

	// Apply rewrites all version sources according to the plan.
	// Returns domain.ErrDirtyWorkTree when uncommitted changes exist and
	// the request does not allow them.
	Apply(ctx context.Context, req BumpRequest) (*BumpPlan, error)
}

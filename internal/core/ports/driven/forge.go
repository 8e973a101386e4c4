package driven

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

// ReleasePublisher creates a release on the hosting forge for a tagged
// version. Optional: when nil, releases are tagged locally only.
type ReleasePublisher interface {
	// Publish creates the forge release for an existing tag.
	// Returns the release URL.
	Publish(ctx context.Context, release *domain.Release, notes string) (string, error)
}

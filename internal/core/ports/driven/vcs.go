package driven

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

// VCS provides access to the project's git repository.
// Implementations wrap the git executable; errors from a directory that is
// not a repository are reported as domain.ErrNotARepository.
type VCS interface {
	// Status returns the working tree state (branch, dirtiness, changed paths).
	Status(ctx context.Context) (*domain.WorkTreeStatus, error)

	// Commit stages the given paths and creates a commit.
	// Returns the new commit hash.
	Commit(ctx context.Context, message string, paths []string) (string, error)

	// Tag creates an annotated tag at HEAD.
	Tag(ctx context.Context, name, message string) error

	// TagExists reports whether a tag is already present.
	TagExists(ctx context.Context, name string) (bool, error)

	// Push pushes the given refs to the remote.
	Push(ctx context.Context, remote string, refs ...string) error
}

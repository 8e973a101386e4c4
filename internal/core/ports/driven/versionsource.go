package driven

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

// VersionSourceStore reads and rewrites the files that hold the project
// version (pyproject.toml, VERSION).
type VersionSourceStore interface {
	// Read extracts the version from a source file.
	// Returns domain.ErrNotFound if the file or field is missing and
	// domain.ErrInvalidVersion if the stored value does not parse.
	Read(ctx context.Context, source domain.VersionSource) (domain.Version, error)

	// Write rewrites the source file with the new version, preserving the
	// rest of its content.
	Write(ctx context.Context, source domain.VersionSource, v domain.Version) error
}

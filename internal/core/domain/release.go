package domain

import "time"

// WorkTreeStatus describes the state of the git working tree.
type WorkTreeStatus struct {
	// Branch is the current branch name.
	Branch string

	// Dirty indicates uncommitted changes exist.
	Dirty bool

	// ChangedFiles lists paths with uncommitted changes.
	ChangedFiles []string
}

// Release records a version release: the bump, the tag, and whether it
// was published to the hosting forge.
type Release struct {
	// ID is the unique release identifier.
	ID string

	// PreviousVersion is the version before the bump.
	PreviousVersion Version

	// Version is the released version.
	Version Version

	// Tag is the git tag name (vX.Y.Z).
	Tag string

	// CommitHash is the release commit, if one was created.
	CommitHash string

	// Published indicates a forge release was created.
	Published bool

	// URL is the forge release URL when published.
	URL string

	// CreatedAt is when the release was made.
	CreatedAt time.Time
}

// CommitMessage returns the conventional release commit message.
func (r *Release) CommitMessage() string {
	return "chore: bump version to " + r.Version.String()
}

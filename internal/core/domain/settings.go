package domain

// VersionSourceKind identifies how a version source file stores its version.
type VersionSourceKind string

// Available version source kinds.
const (
	// VersionSourcePyproject reads and writes [project].version in a
	// pyproject.toml file.
	VersionSourcePyproject VersionSourceKind = "pyproject"

	// VersionSourcePlain reads and writes a file whose entire content is
	// the version string.
	VersionSourcePlain VersionSourceKind = "plain"
)

// IsValid returns true if the source kind is recognised.
func (k VersionSourceKind) IsValid() bool {
	switch k {
	case VersionSourcePyproject, VersionSourcePlain:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k VersionSourceKind) String() string {
	return string(k)
}

// VersionSource is one file holding the project version.
type VersionSource struct {
	// Path is the file path, relative to the project root.
	Path string

	// Kind selects the read/write strategy.
	Kind VersionSourceKind
}

// ForgeSettings holds release publishing configuration.
type ForgeSettings struct {
	// Owner is the repository owner or organisation.
	Owner string

	// Repo is the repository name.
	Repo string

	// Token is the API token. May also come from the environment.
	Token string
}

// IsConfigured returns true if publishing can be attempted.
func (f ForgeSettings) IsConfigured() bool {
	return f.Owner != "" && f.Repo != ""
}

// WatchSettings holds check --watch configuration.
type WatchSettings struct {
	// Paths are the directories to watch, relative to the project root.
	Paths []string

	// Extensions restricts events to files with these extensions.
	Extensions []string

	// DebounceSeconds is the minimum gap between triggered runs.
	DebounceSeconds int
}

// AppSettings holds all tool settings.
type AppSettings struct {
	// ProjectRoot is the project directory the tool operates on.
	ProjectRoot string

	// VersionSources are the files rewritten on a bump.
	VersionSources []VersionSource

	// Pipeline is the ordered check pipeline.
	Pipeline []Step

	// Forge holds publishing configuration.
	Forge ForgeSettings

	// Watch holds watch-mode configuration.
	Watch WatchSettings

	// HistoryLimit is the number of run reports kept per kind.
	HistoryLimit int
}

// DefaultAppSettings returns settings with sensible defaults.
// The forge is left unconfigured; releases are still tagged locally
// without it.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ProjectRoot: ".",
		VersionSources: []VersionSource{
			{Path: "pyproject.toml", Kind: VersionSourcePyproject},
		},
		Pipeline: DefaultPipeline(),
		Watch: WatchSettings{
			Paths:           []string{"."},
			Extensions:      []string{".py", ".toml"},
			DebounceSeconds: 2,
		},
		HistoryLimit: 100,
	}
}

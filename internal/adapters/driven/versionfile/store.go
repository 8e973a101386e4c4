package versionfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
)

// versionLinePattern matches a `version = "..."` assignment line.
var versionLinePattern = regexp.MustCompile(`^(\s*version\s*=\s*)"[^"]*"(.*)$`)

// Ensure Store implements the interface.
var _ driven.VersionSourceStore = (*Store)(nil)

// Store reads and rewrites project version files under a root directory.
type Store struct {
	root string
}

// NewStore creates a version source store rooted at the project directory.
func NewStore(root string) *Store {
	if root == "" {
		root = "."
	}
	return &Store{root: root}
}

// Read extracts the version from a source file.
func (s *Store) Read(_ context.Context, source domain.VersionSource) (domain.Version, error) {
	data, err := os.ReadFile(s.path(source))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Version{}, fmt.Errorf("%w: %s", domain.ErrNotFound, source.Path)
		}
		return domain.Version{}, fmt.Errorf("reading %s: %w", source.Path, err)
	}

	switch source.Kind {
	case domain.VersionSourcePyproject:
		return readPyproject(source.Path, data)
	case domain.VersionSourcePlain:
		return domain.ParseVersion(strings.TrimSpace(string(data)))
	default:
		return domain.Version{}, fmt.Errorf("%w: version source kind %q", domain.ErrInvalidInput, source.Kind)
	}
}

// Write rewrites the source file with the new version.
func (s *Store) Write(ctx context.Context, source domain.VersionSource, v domain.Version) error {
	switch source.Kind {
	case domain.VersionSourcePyproject:
		return s.writePyproject(ctx, source, v)
	case domain.VersionSourcePlain:
		return os.WriteFile(s.path(source), []byte(v.String()+"\n"), 0644)
	default:
		return fmt.Errorf("%w: version source kind %q", domain.ErrInvalidInput, source.Kind)
	}
}

// path resolves a source path against the project root.
func (s *Store) path(source domain.VersionSource) string {
	if filepath.IsAbs(source.Path) {
		return source.Path
	}
	return filepath.Join(s.root, source.Path)
}

// readPyproject extracts [project].version from pyproject.toml content.
func readPyproject(path string, data []byte) (domain.Version, error) {
	var doc struct {
		Project struct {
			Version string `toml:"version"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return domain.Version{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Project.Version == "" {
		return domain.Version{}, fmt.Errorf("%w: %s has no [project].version", domain.ErrNotFound, path)
	}
	return domain.ParseVersion(doc.Project.Version)
}

// writePyproject rewrites the version assignment inside the [project]
// table, leaving every other line untouched.
func (s *Store) writePyproject(ctx context.Context, source domain.VersionSource, v domain.Version) error {
	// Reading first validates the file and the current value.
	if _, err := s.Read(ctx, source); err != nil {
		return err
	}

	data, err := os.ReadFile(s.path(source))
	if err != nil {
		return fmt.Errorf("reading %s: %w", source.Path, err)
	}

	lines := strings.Split(string(data), "\n")
	inProject := false
	replaced := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			inProject = trimmed == "[project]"
			continue
		}
		if !inProject || replaced {
			continue
		}
		if m := versionLinePattern.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + `"` + v.String() + `"` + m[2]
			replaced = true
		}
	}

	if !replaced {
		return fmt.Errorf("%w: no version assignment in [project] table of %s",
			domain.ErrNotFound, source.Path)
	}

	return os.WriteFile(s.path(source), []byte(strings.Join(lines, "\n")), 0644)
}

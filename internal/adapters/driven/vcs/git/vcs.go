package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/logger"
)

// Ensure VCS implements the interface.
var _ driven.VCS = (*VCS)(nil)

// VCS wraps the git executable for a single repository.
type VCS struct {
	dir string
}

// New creates a git adapter operating on the given directory.
func New(dir string) *VCS {
	if dir == "" {
		dir = "."
	}
	return &VCS{dir: dir}
}

// Status returns the working tree state.
func (g *VCS) Status(ctx context.Context) (*domain.WorkTreeStatus, error) {
	branch, err := g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, err
	}

	porcelain, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}

	changed := parsePorcelain(porcelain)
	return &domain.WorkTreeStatus{
		Branch:       strings.TrimSpace(branch),
		Dirty:        len(changed) > 0,
		ChangedFiles: changed,
	}, nil
}

// Commit stages the given paths and creates a commit.
func (g *VCS) Commit(ctx context.Context, message string, paths []string) (string, error) {
	args := append([]string{"add", "--"}, paths...)
	if _, err := g.run(ctx, args...); err != nil {
		return "", err
	}

	if _, err := g.run(ctx, "commit", "-m", message); err != nil {
		return "", err
	}

	hash, err := g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hash), nil
}

// Tag creates an annotated tag at HEAD.
func (g *VCS) Tag(ctx context.Context, name, message string) error {
	_, err := g.run(ctx, "tag", "-a", name, "-m", message)
	return err
}

// TagExists reports whether a tag is already present.
func (g *VCS) TagExists(ctx context.Context, name string) (bool, error) {
	out, err := g.run(ctx, "tag", "-l", name)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Push pushes the given refs to the remote.
func (g *VCS) Push(ctx context.Context, remote string, refs ...string) error {
	args := append([]string{"push", remote}, refs...)
	_, err := g.run(ctx, args...)
	return err
}

// run executes a git subcommand and returns its stdout.
func (g *VCS) run(ctx context.Context, args ...string) (string, error) {
	logger.Debug("git %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "not a git repository") {
			return "", fmt.Errorf("%w: %s", domain.ErrNotARepository, g.dir)
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}

	return stdout.String(), nil
}

// parsePorcelain extracts changed paths from `git status --porcelain`
// output.
func parsePorcelain(out string) []string {
	var paths []string //nolint:prealloc // line count unknown
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		// Format: XY <path> (or XY <orig> -> <path> for renames).
		path := strings.TrimSpace(line[3:])
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+len(" -> "):]
		}
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

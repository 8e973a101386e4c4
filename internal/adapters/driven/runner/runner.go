// Package runner implements the driven.CommandRunner port with os/exec.
//
// Pipeline steps run external tools (ruff, mypy, pytest) whose nonzero
// exit codes are expected outcomes, not infrastructure failures, so the
// adapter folds exit codes into the result and reserves errors for
// commands that could not be started at all.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// Runner executes external commands with combined output capture.
type Runner struct{}

// New creates a command runner.
func New() *Runner {
	return &Runner{}
}

// Run executes the command in dir and captures combined output.
func (r *Runner) Run(ctx context.Context, dir, command string, args ...string) (*driven.CommandResult, error) {
	logger.Debug("exec: %s %s (dir=%s)", command, strings.Join(args, " "), dir)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &driven.CommandResult{
				ExitCode: exitErr.ExitCode(),
				Output:   output.String(),
			}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("running %s: %w", command, err)
	}

	return &driven.CommandResult{ExitCode: 0, Output: output.String()}, nil
}

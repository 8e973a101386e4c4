package driven

import "context"

// CommandResult is the outcome of one executed command.
type CommandResult struct {
	// ExitCode is the process exit code (0 on success).
	ExitCode int

	// Output is the combined stdout and stderr.
	Output string
}

// CommandRunner executes external commands for pipeline steps.
// A nonzero exit code is NOT an error: the result carries the code and the
// error return is reserved for spawn failures (command not found, context
// cancelled).
type CommandRunner interface {
	// Run executes command with args in dir and captures its output.
	Run(ctx context.Context, dir, command string, args ...string) (*CommandResult, error)
}

package domain

import "time"

// Step is a single command in the check pipeline.
type Step struct {
	// ID is the unique identifier for the step (e.g. "format").
	ID string

	// Name is a human-readable name shown in output.
	Name string

	// Command is the executable to run.
	Command string

	// Args are the command arguments.
	Args []string

	// Critical controls failure handling: a failing critical step aborts
	// the pipeline; a non-critical failure only warns.
	Critical bool

	// Bench marks the step as benchmark-only. Bench steps run only when
	// the pipeline is invoked with benchmarks enabled.
	Bench bool
}

// StepStatus describes the outcome of a single step.
type StepStatus string

// Step outcomes.
const (
	// StepPassed means the command exited zero.
	StepPassed StepStatus = "passed"

	// StepFailed means the command exited nonzero.
	StepFailed StepStatus = "failed"

	// StepWarned means a non-critical command exited nonzero.
	StepWarned StepStatus = "warned"

	// StepSkipped means the step never ran because an earlier
	// critical step failed.
	StepSkipped StepStatus = "skipped"
)

// String returns the string representation.
func (s StepStatus) String() string {
	return string(s)
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	// StepID identifies the step.
	StepID string

	// Name is the step's display name at run time.
	Name string

	// Status is the outcome.
	Status StepStatus

	// ExitCode is the command's exit code (0 on success).
	ExitCode int

	// Output is the captured combined stdout/stderr, truncated for storage.
	Output string

	// Duration is how long the step ran.
	Duration time.Duration
}

// RunReport is the persisted record of one pipeline run.
type RunReport struct {
	// ID is the unique run identifier.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// EndedAt is when the run finished or aborted.
	EndedAt time.Time

	// Results holds one entry per configured step, in pipeline order.
	Results []StepResult

	// Failed indicates a critical step failed.
	Failed bool

	// Bench indicates benchmarks were included in this run.
	Bench bool
}

// Duration returns the total run duration.
func (r *RunReport) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Warnings returns the number of non-critical failures in the run.
func (r *RunReport) Warnings() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Status == StepWarned {
			n++
		}
	}
	return n
}

// DefaultPipeline returns the built-in step order, mirroring the
// project's original local CI runner: format check, lint, type check,
// unit tests, and an optional benchmark step.
func DefaultPipeline() []Step {
	return []Step{
		{
			ID:       "format",
			Name:     "Format Check",
			Command:  "ruff",
			Args:     []string{"format", "--check", "."},
			Critical: true,
		},
		{
			ID:       "lint",
			Name:     "Lint",
			Command:  "ruff",
			Args:     []string{"check", "."},
			Critical: false,
		},
		{
			ID:       "typecheck",
			Name:     "Type Check",
			Command:  "mypy",
			Args:     []string{"."},
			Critical: true,
		},
		{
			ID:       "test",
			Name:     "Unit Tests",
			Command:  "pytest",
			Args:     []string{"-q"},
			Critical: true,
		},
		{
			ID:       "bench",
			Name:     "Benchmarks",
			Command:  "pytest",
			Args:     []string{"--benchmark-only"},
			Critical: false,
			Bench:    true,
		},
	}
}

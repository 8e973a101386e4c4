package driving

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

// CheckOptions control a pipeline run.
type CheckOptions struct {
	// Bench includes benchmark steps in the run.
	Bench bool

	// Only restricts the run to the named step IDs, preserving order.
	Only []string
}

// CheckStatus is a snapshot of an in-progress run.
type CheckStatus struct {
	// Running indicates a run is in progress.
	Running bool

	// CurrentStep is the step executing right now.
	CurrentStep string

	// StepsDone is the number of completed steps.
	StepsDone int

	// StepsTotal is the number of steps in the run.
	StepsTotal int
}

// CheckOrchestrator runs the check pipeline.
type CheckOrchestrator interface {
	// Run executes the pipeline and returns the report.
	// The report is returned (and recorded) even when the run fails; the
	// error wraps domain.ErrStepFailed when a critical step failed.
	Run(ctx context.Context, opts CheckOptions) (*domain.RunReport, error)

	// Status returns a snapshot of the current run.
	Status(ctx context.Context) (*CheckStatus, error)

	// Watch re-runs the pipeline whenever watched files change, until the
	// context is cancelled. Each run is reported through onReport.
	Watch(ctx context.Context, opts CheckOptions, onReport func(*domain.RunReport)) error
}

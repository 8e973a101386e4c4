package services

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
	"github.com/zenith-framework/zendev/internal/logger"
)

// maxStoredOutput caps captured step output persisted to history.
const maxStoredOutput = 64 * 1024

// Ensure CheckOrchestrator implements the interface.
var _ driving.CheckOrchestrator = (*CheckOrchestrator)(nil)

// CheckOrchestrator runs the check pipeline: each configured step in
// order, aborting at the first critical failure.
type CheckOrchestrator struct {
	runner   driven.CommandRunner
	history  driven.HistoryStore
	settings driving.SettingsService
	watcher  driven.Watcher // optional

	// Status tracking
	mu      sync.Mutex
	running bool
	status  driving.CheckStatus
}

// NewCheckOrchestrator creates a new check orchestrator.
// The watcher is optional - if nil, Watch returns an error.
func NewCheckOrchestrator(
	runner driven.CommandRunner,
	history driven.HistoryStore,
	settings driving.SettingsService,
	watcher driven.Watcher,
) *CheckOrchestrator {
	return &CheckOrchestrator{
		runner:   runner,
		history:  history,
		settings: settings,
		watcher:  watcher,
	}
}

// Run executes the pipeline and returns the report.
//
//nolint:gocognit // Orchestration function with necessary sequential steps
func (o *CheckOrchestrator) Run(ctx context.Context, opts driving.CheckOptions) (*domain.RunReport, error) {
	settings, err := o.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	steps := selectSteps(settings.Pipeline, opts)
	if len(steps) == 0 {
		return nil, domain.ErrNoSteps
	}

	if err := o.begin(len(steps)); err != nil {
		return nil, err
	}
	defer o.end()

	report := &domain.RunReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Bench:     opts.Bench,
	}

	logger.Section("Check Pipeline")

	aborted := false
	for i, step := range steps {
		if aborted {
			report.Results = append(report.Results, domain.StepResult{
				StepID: step.ID,
				Name:   step.Name,
				Status: domain.StepSkipped,
			})
			continue
		}

		o.setCurrent(step.Name, i)
		logger.Info("Running %s: %s %s", step.Name, step.Command, strings.Join(step.Args, " "))

		result := o.runStep(ctx, settings.ProjectRoot, step)
		report.Results = append(report.Results, result)

		switch result.Status {
		case domain.StepFailed:
			report.Failed = true
			aborted = true
		case domain.StepWarned:
			logger.Warn("%s failed (non-critical), continuing", step.Name)
		case domain.StepPassed, domain.StepSkipped:
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	report.EndedAt = time.Now().UTC()

	// Record the run either way; a failed run is still history.
	if saveErr := o.history.SaveRun(ctx, report); saveErr != nil {
		logger.Warn("Failed to record run: %v", saveErr)
	} else if settings.HistoryLimit > 0 {
		if pruneErr := o.history.Prune(ctx, settings.HistoryLimit); pruneErr != nil {
			logger.Warn("Failed to prune history: %v", pruneErr)
		}
	}

	if report.Failed {
		return report, fmt.Errorf("%w: %s", domain.ErrStepFailed, firstFailure(report))
	}
	return report, nil
}

// Status returns a snapshot of the current run.
func (o *CheckOrchestrator) Status(_ context.Context) (*driving.CheckStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Return a copy to avoid race conditions
	status := o.status
	return &status, nil
}

// Watch re-runs the pipeline whenever watched files change.
//
//nolint:gocognit // Event loop coordinating watcher, debounce and runs
func (o *CheckOrchestrator) Watch(
	ctx context.Context,
	opts driving.CheckOptions,
	onReport func(*domain.RunReport),
) error {
	if o.watcher == nil {
		return fmt.Errorf("%w: no watcher configured", domain.ErrInvalidInput)
	}

	settings, err := o.settings.Get()
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	paths := make([]string, 0, len(settings.Watch.Paths))
	for _, p := range settings.Watch.Paths {
		paths = append(paths, filepath.Join(settings.ProjectRoot, p))
	}

	events, err := o.watcher.Watch(ctx, paths)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	debounce := time.Duration(settings.Watch.DebounceSeconds) * time.Second
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	// One run per debounce window; bursts of events collapse into the
	// first trigger.
	limiter := rate.NewLimiter(rate.Every(debounce), 1)

	// Initial run before waiting for changes.
	o.watchRun(ctx, opts, onReport)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-events:
			if !ok {
				return nil
			}
			if !watchedExtension(path, settings.Watch.Extensions) {
				continue
			}
			if !limiter.Allow() {
				logger.Debug("Debounced change: %s", path)
				continue
			}
			logger.Info("Change detected: %s", path)
			o.watchRun(ctx, opts, onReport)
		}
	}
}

// watchRun executes one watch-triggered run, reporting but not
// propagating failures.
func (o *CheckOrchestrator) watchRun(
	ctx context.Context,
	opts driving.CheckOptions,
	onReport func(*domain.RunReport),
) {
	report, err := o.Run(ctx, opts)
	if err != nil && report == nil {
		logger.Warn("Watch run error: %v", err)
		return
	}
	if onReport != nil && report != nil {
		onReport(report)
	}
}

// runStep executes a single step and classifies its outcome.
func (o *CheckOrchestrator) runStep(ctx context.Context, dir string, step domain.Step) domain.StepResult {
	start := time.Now()
	res, err := o.runner.Run(ctx, dir, step.Command, step.Args...)
	elapsed := time.Since(start)

	result := domain.StepResult{
		StepID:   step.ID,
		Name:     step.Name,
		Duration: elapsed,
	}

	if err != nil {
		// Spawn failure (tool missing, context cancelled). Treated like
		// a nonzero exit for criticality purposes.
		result.ExitCode = -1
		result.Output = truncateOutput(err.Error())
	} else {
		result.ExitCode = res.ExitCode
		result.Output = truncateOutput(res.Output)
	}

	switch {
	case err == nil && res.ExitCode == 0:
		result.Status = domain.StepPassed
	case step.Critical:
		result.Status = domain.StepFailed
	default:
		result.Status = domain.StepWarned
	}

	return result
}

// begin marks a run as started.
func (o *CheckOrchestrator) begin(total int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return domain.ErrRunInProgress
	}
	o.running = true
	o.status = driving.CheckStatus{
		Running:    true,
		StepsTotal: total,
	}
	return nil
}

// end clears the running state.
func (o *CheckOrchestrator) end() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.running = false
	o.status.Running = false
	o.status.CurrentStep = ""
}

// setCurrent updates the in-progress step.
func (o *CheckOrchestrator) setCurrent(name string, done int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.status.CurrentStep = name
	o.status.StepsDone = done
}

// selectSteps filters the configured pipeline for this run.
func selectSteps(pipeline []domain.Step, opts driving.CheckOptions) []domain.Step {
	var steps []domain.Step //nolint:prealloc // size depends on filters
	for _, step := range pipeline {
		if step.Bench && !opts.Bench {
			continue
		}
		if len(opts.Only) > 0 && !slices.Contains(opts.Only, step.ID) {
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

// firstFailure names the step that aborted the run.
func firstFailure(report *domain.RunReport) string {
	for i := range report.Results {
		if report.Results[i].Status == domain.StepFailed {
			return report.Results[i].Name
		}
	}
	return "unknown step"
}

// truncateOutput caps output for storage.
func truncateOutput(s string) string {
	if len(s) <= maxStoredOutput {
		return s
	}
	return s[:maxStoredOutput]
}

// watchedExtension reports whether path matches the watched extensions.
// An empty filter watches everything.
func watchedExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	return slices.Contains(exts, ext)
}

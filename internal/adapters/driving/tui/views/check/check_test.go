package check

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/messages"
	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

type mockOrchestrator struct {
	report *domain.RunReport
	runErr error
	status *driving.CheckStatus
	runs   []driving.CheckOptions
}

func (m *mockOrchestrator) Run(_ context.Context, opts driving.CheckOptions) (*domain.RunReport, error) {
	m.runs = append(m.runs, opts)
	return m.report, m.runErr
}

func (m *mockOrchestrator) Status(_ context.Context) (*driving.CheckStatus, error) {
	if m.status != nil {
		return m.status, nil
	}
	return &driving.CheckStatus{}, nil
}

func (m *mockOrchestrator) Watch(
	ctx context.Context,
	_ driving.CheckOptions,
	_ func(*domain.RunReport),
) error {
	<-ctx.Done()
	return ctx.Err()
}

func passingReport() *domain.RunReport {
	now := time.Now().UTC()
	return &domain.RunReport{
		ID:        "run-1",
		StartedAt: now,
		EndedAt:   now.Add(9 * time.Second),
		Results: []domain.StepResult{
			{StepID: "format", Name: "Format Check", Status: domain.StepPassed, Duration: time.Second},
			{StepID: "test", Name: "Unit Tests", Status: domain.StepPassed, Duration: 8 * time.Second},
		},
	}
}

func newTestView(orchestrator *mockOrchestrator) *View {
	view := NewView(nil, orchestrator)
	view.SetDimensions(80, 24)
	return view
}

// runPipeline presses enter and delivers the completion message,
// unwrapping the batch that also carries the spinner tick.
func runPipeline(t *testing.T, view *View) {
	t.Helper()

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, sub := range batch {
		if result, ok := sub().(messages.CheckCompleted); ok {
			view.Update(result)
		}
	}
}

func TestView_RunOnEnter(t *testing.T) {
	orchestrator := &mockOrchestrator{report: passingReport()}
	view := newTestView(orchestrator)

	runPipeline(t, view)

	assert.False(t, view.Running())
	require.Len(t, orchestrator.runs, 1)
	require.NotNil(t, view.Report())
	assert.Contains(t, view.View(), "Format Check")
	assert.Contains(t, view.View(), "All checks passed")
}

func TestView_BenchToggle(t *testing.T) {
	orchestrator := &mockOrchestrator{report: passingReport()}
	view := newTestView(orchestrator)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	assert.True(t, view.Bench())

	runPipeline(t, view)

	require.Len(t, orchestrator.runs, 1)
	assert.True(t, orchestrator.runs[0].Bench)
}

func TestView_FailedRunShowsReport(t *testing.T) {
	report := passingReport()
	report.Failed = true
	report.Results[1].Status = domain.StepFailed
	orchestrator := &mockOrchestrator{
		report: report,
		runErr: fmt.Errorf("%w: Unit Tests", domain.ErrStepFailed),
	}
	view := newTestView(orchestrator)

	runPipeline(t, view)

	assert.Contains(t, view.View(), "Checks failed")
	// The report carries the failure detail; no separate error line.
	assert.NoError(t, view.Err())
}

func TestView_WarningsShown(t *testing.T) {
	report := passingReport()
	report.Results[0].Status = domain.StepWarned
	view := newTestView(&mockOrchestrator{report: report})

	runPipeline(t, view)

	assert.Contains(t, view.View(), "1 warning(s)")
}

func TestView_LiveStatusWhileRunning(t *testing.T) {
	orchestrator := &mockOrchestrator{
		report: passingReport(),
		status: &driving.CheckStatus{Running: true, CurrentStep: "Lint", StepsDone: 1, StepsTotal: 4},
	}
	view := newTestView(orchestrator)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	// No sample yet; the label stays generic.
	assert.Contains(t, view.View(), "Running checks...")

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var completed tea.Msg
	sampled := false
	for _, sub := range batch {
		switch msg := sub().(type) {
		case statusTick:
			sampled = true
			_, next := view.Update(msg)
			// Polling continues while the run is in flight.
			assert.NotNil(t, next)
		case messages.CheckCompleted:
			completed = msg
		}
	}
	require.True(t, sampled)
	assert.Contains(t, view.View(), "Running Lint (step 2 of 4)")

	require.NotNil(t, completed)
	view.Update(completed)
	assert.NotContains(t, view.View(), "step 2 of 4")
	assert.Contains(t, view.View(), "All checks passed")
}

func TestView_StatusTickIgnoredWhenIdle(t *testing.T) {
	view := newTestView(&mockOrchestrator{})

	_, cmd := view.Update(statusTick{
		status: &driving.CheckStatus{Running: true, CurrentStep: "Lint", StepsTotal: 4},
	})

	assert.Nil(t, cmd)
	assert.NotContains(t, view.View(), "Lint")
}

func TestView_KeysIgnoredWhileRunning(t *testing.T) {
	orchestrator := &mockOrchestrator{report: passingReport()}
	view := newTestView(orchestrator)

	_, first := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)
	_, second := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, second)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := newTestView(&mockOrchestrator{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_Reset(t *testing.T) {
	view := newTestView(&mockOrchestrator{report: passingReport()})
	runPipeline(t, view)
	require.NotNil(t, view.Report())

	view.Reset()

	assert.Nil(t, view.Report())
	assert.False(t, view.Running())
}

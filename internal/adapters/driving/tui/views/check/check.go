// Package check provides the check pipeline view for the TUI.
package check

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/messages"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/styles"
	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// View is the check pipeline view.
type View struct {
	styles       *styles.Styles
	orchestrator driving.CheckOrchestrator

	report  *domain.RunReport
	status  *driving.CheckStatus
	spin    spinner.Model
	bench   bool
	running bool
	err     error
	width   int
	height  int
	ready   bool
}

// statusInterval is how often an in-progress run is polled for its
// current step.
const statusInterval = 200 * time.Millisecond

// statusTick carries a snapshot of the in-progress run.
type statusTick struct {
	status *driving.CheckStatus
}

// NewView creates a new check view.
func NewView(s *styles.Styles, orchestrator driving.CheckOrchestrator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = s.Subtitle

	return &View{
		styles:       s,
		orchestrator: orchestrator,
		spin:         spin,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reset clears the last run.
func (v *View) Reset() {
	v.report = nil
	v.status = nil
	v.running = false
	v.err = nil
}

// pollStatus returns a command that samples the orchestrator's run
// status after a short delay.
func (v *View) pollStatus() tea.Cmd {
	return tea.Tick(statusInterval, func(time.Time) tea.Msg {
		if v.orchestrator == nil {
			return statusTick{}
		}
		status, err := v.orchestrator.Status(context.Background())
		if err != nil {
			return statusTick{}
		}
		return statusTick{status: status}
	})
}

// runChecks returns a command that executes the pipeline.
func (v *View) runChecks() tea.Cmd {
	bench := v.bench
	return func() tea.Msg {
		if v.orchestrator == nil {
			return messages.CheckCompleted{Err: fmt.Errorf("check orchestrator not available")}
		}
		report, err := v.orchestrator.Run(context.Background(), driving.CheckOptions{Bench: bench})
		return messages.CheckCompleted{Report: report, Err: err}
	}
}

// Update handles messages for the check view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		if v.running {
			return v, nil
		}
		switch msg.String() {
		case "enter", "r":
			v.running = true
			v.err = nil
			return v, tea.Batch(v.runChecks(), v.spin.Tick, v.pollStatus())
		case "b":
			v.bench = !v.bench
			return v, nil
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil

	case messages.CheckCompleted:
		v.running = false
		v.status = nil
		v.report = msg.Report
		// A failed run still carries a report; only surface errors
		// that left us without one.
		if msg.Report == nil {
			v.err = msg.Err
		}
		return v, nil

	case statusTick:
		if !v.running {
			return v, nil
		}
		v.status = msg.status
		return v, v.pollStatus()

	case spinner.TickMsg:
		if !v.running {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd
	}

	return v, nil
}

// View renders the check pipeline state.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Run Checks"))
	b.WriteString("\n\n")

	switch {
	case v.running:
		b.WriteString(v.spin.View())
		b.WriteString(v.styles.Muted.Render(" " + v.runningLabel()))
		b.WriteString("\n")
	case v.report != nil:
		v.renderReport(&b)
	default:
		b.WriteString(v.styles.Muted.Render("Press Enter to run the check pipeline."))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	}

	b.WriteString("\n")
	benchLabel := "off"
	if v.bench {
		benchLabel = "on"
	}
	b.WriteString(v.styles.Help.Render(
		fmt.Sprintf("[Enter] Run  [b] Benchmarks: %s  [Esc] Back", benchLabel)))

	return b.String()
}

// runningLabel names the step in flight once the first status sample
// arrives.
func (v *View) runningLabel() string {
	if v.status == nil || !v.status.Running || v.status.CurrentStep == "" {
		return "Running checks..."
	}
	return fmt.Sprintf("Running %s (step %d of %d)...",
		v.status.CurrentStep, v.status.StepsDone+1, v.status.StepsTotal)
}

func (v *View) renderReport(b *strings.Builder) {
	for _, result := range v.report.Results {
		marker, style := v.statusStyle(result.Status)
		line := fmt.Sprintf("%s %-18s %s",
			marker, result.Name, result.Duration.Round(10*time.Millisecond))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.report.Failed:
		b.WriteString(v.styles.Error.Render("Checks failed"))
	case v.report.Warnings() > 0:
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("Checks passed with %d warning(s)", v.report.Warnings())))
	default:
		b.WriteString(v.styles.Success.Render("All checks passed"))
	}
	b.WriteString("\n")
}

func (v *View) statusStyle(status domain.StepStatus) (string, lipgloss.Style) {
	switch status {
	case domain.StepPassed:
		return "✓", v.styles.Success
	case domain.StepFailed:
		return "✗", v.styles.Error
	case domain.StepWarned:
		return "!", v.styles.Warning
	default:
		return "-", v.styles.Muted
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Report returns the last run report, if any.
func (v *View) Report() *domain.RunReport {
	return v.report
}

// Running reports whether a run is in progress.
func (v *View) Running() bool {
	return v.running
}

// Bench reports whether benchmark steps are enabled.
func (v *View) Bench() bool {
	return v.bench
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}

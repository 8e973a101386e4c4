package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

var (
	checkBench bool
	checkWatch bool
	checkOnly  []string
)

// Styles for step outcomes.
var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the local check pipeline",
	Long: `Runs the configured check pipeline: format check, lint, type check
and unit tests, in that order. The pipeline aborts at the first failing
critical step; a lint failure only warns.

Use --bench to include the benchmark step, --only to run a subset of
steps, and --watch to re-run the pipeline whenever project files change.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkBench, "bench", false, "include benchmark steps")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "re-run on file changes")
	checkCmd.Flags().StringSliceVar(&checkOnly, "only", nil, "run only the named steps")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if checkOrchestrator == nil {
		return errors.New("check orchestrator not configured")
	}

	opts := driving.CheckOptions{Bench: checkBench, Only: checkOnly}

	if checkWatch {
		cmd.Println("Watching for changes. Press Ctrl+C to stop.")
		err := checkOrchestrator.Watch(cmd.Context(), opts, func(report *domain.RunReport) {
			printReport(cmd, report)
		})
		if errors.Is(err, cmd.Context().Err()) {
			return nil
		}
		return err
	}

	report, err := checkOrchestrator.Run(cmd.Context(), opts)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return err
	}
	return nil
}

// printReport renders a run report to the command output.
func printReport(cmd *cobra.Command, report *domain.RunReport) {
	cmd.Println()
	for _, result := range report.Results {
		cmd.Printf("  %s %s (%s)\n", statusMarker(result.Status), result.Name,
			result.Duration.Round(10*time.Millisecond))
		if result.Status == domain.StepFailed || result.Status == domain.StepWarned {
			if result.Output != "" {
				cmd.Println(indent(result.Output))
			}
		}
	}

	cmd.Println()
	elapsed := report.Duration().Round(10 * time.Millisecond)
	switch {
	case report.Failed:
		cmd.Println(failStyle.Render("Checks failed") + fmt.Sprintf(" in %s", elapsed))
	case report.Warnings() > 0:
		cmd.Println(passStyle.Render("Checks passed") +
			warnStyle.Render(fmt.Sprintf(" with %d warning(s)", report.Warnings())) +
			fmt.Sprintf(" in %s", elapsed))
	default:
		cmd.Println(passStyle.Render("All checks passed") + fmt.Sprintf(" in %s", elapsed))
	}
}

// statusMarker renders the outcome symbol for a step.
func statusMarker(status domain.StepStatus) string {
	switch status {
	case domain.StepPassed:
		return passStyle.Render("✓")
	case domain.StepFailed:
		return failStyle.Render("✗")
	case domain.StepWarned:
		return warnStyle.Render("!")
	case domain.StepSkipped:
		return skipStyle.Render("-")
	default:
		return "?"
	}
}

// indent prefixes every output line for step detail display.
func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "      " + line
	}
	return strings.Join(lines, "\n")
}

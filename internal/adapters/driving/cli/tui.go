package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zenith-framework/zendev/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for zendev.

The TUI offers the bump, check and history workflows with keyboard
navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Confirm
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runTUICmd,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	return launchTUI(cmd)
}

// launchTUI starts the bubbletea program. Also used by the bare bump
// command.
func launchTUI(cmd *cobra.Command) error {
	// Panic recovery to get stack traces out of the alternate screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Bump:     bumpService,
		Check:    checkOrchestrator,
		Release:  releaseService,
		History:  historyService,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

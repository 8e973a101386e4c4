// Package cli implements the cobra command tree.
//
// Commands are declared as package-level variables and registered on
// rootCmd from init functions. Services are injected through SetServices
// before Execute; commands that need a service fail with a clear error
// when it is missing, which keeps the command tree testable without a
// full wiring.
package cli

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zenith-framework/zendev/internal/core/ports/driving"
	"github.com/zenith-framework/zendev/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose toggles debug logging.
var verbose bool

// Injected services.
var (
	bumpService       driving.BumpService
	checkOrchestrator driving.CheckOrchestrator
	releaseService    driving.ReleaseService
	historyService    driving.HistoryService
	settingsService   driving.SettingsService
)

// Services bundles everything the command tree needs.
type Services struct {
	Bump     driving.BumpService
	Check    driving.CheckOrchestrator
	Release  driving.ReleaseService
	History  driving.HistoryService
	Settings driving.SettingsService
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	bumpService = s.Bump
	checkOrchestrator = s.Check
	releaseService = s.Release
	historyService = s.History
	settingsService = s.Settings
}

var rootCmd = &cobra.Command{
	Use:   "zendev",
	Short: "Developer workflow tool for the Zenith project",
	Long: `zendev manages the Zenith development workflow: semantic version
bumps across the project's version files, the local check pipeline
(format, lint, type check, tests), release tagging and publishing, and
the history of both.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a y/N question on the terminal. Anything but an explicit
// yes is a no.
//
//nolint:errcheck // CLI helper, read error treated as "no"
func confirm(cmd *cobra.Command, prompt string) bool {
	cmd.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes"
}

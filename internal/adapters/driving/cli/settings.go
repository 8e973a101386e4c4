package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage tool settings",
	Long: `View and configure zendev settings: version sources, the check
pipeline, GitHub publishing, watch mode and history retention.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsForgeCmd = &cobra.Command{
	Use:   "forge <owner> <repo>",
	Short: "Configure GitHub release publishing",
	Long: `Configure the GitHub repository releases are published to.
The API token is read without echo; leave it empty to keep the current
token or use the GITHUB_TOKEN environment variable at release time.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsForge,
}

var settingsLimitCmd = &cobra.Command{
	Use:   "limit <n>",
	Short: "Set history retention",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsLimit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsForgeCmd)
	settingsCmd.AddCommand(settingsLimitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Project]")
	cmd.Printf("  Root: %s\n", settings.ProjectRoot)
	for _, src := range settings.VersionSources {
		cmd.Printf("  Version source: %s (%s)\n", src.Path, src.Kind)
	}
	cmd.Println()

	cmd.Println("[Pipeline]")
	for _, step := range settings.Pipeline {
		flags := ""
		if !step.Critical {
			flags += " (non-critical)"
		}
		if step.Bench {
			flags += " (bench)"
		}
		cmd.Printf("  %s: %s %s%s\n", step.ID, step.Command, strings.Join(step.Args, " "), flags)
	}
	cmd.Println()

	cmd.Println("[Forge]")
	if settings.Forge.IsConfigured() {
		cmd.Printf("  Repository: %s/%s\n", settings.Forge.Owner, settings.Forge.Repo)
		if settings.Forge.Token != "" {
			cmd.Printf("  Token: %s\n", maskToken(settings.Forge.Token))
		} else {
			cmd.Println("  Token: (not set)")
		}
	} else {
		cmd.Println("  Not configured; releases are tagged locally only.")
	}
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Paths: %s\n", strings.Join(settings.Watch.Paths, ", "))
	cmd.Printf("  Extensions: %s\n", strings.Join(settings.Watch.Extensions, ", "))
	cmd.Printf("  Debounce: %ds\n", settings.Watch.DebounceSeconds)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Retention: %d entries per kind\n", settings.HistoryLimit)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'zendev settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("zendev Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	// Step 1: project root
	cmd.Println("Step 1: Project")
	cmd.Println("---------------")
	cmd.Printf("Project root [%s]: ", settings.ProjectRoot)
	if input := readLine(reader); input != "" {
		settings.ProjectRoot = input
	}
	cmd.Println()

	// Step 2: version sources
	cmd.Println("Step 2: Version Sources")
	cmd.Println("-----------------------")
	current := make([]string, 0, len(settings.VersionSources))
	for _, src := range settings.VersionSources {
		current = append(current, src.Path)
	}
	cmd.Printf("Version files, comma separated [%s]: ", strings.Join(current, ","))
	if input := readLine(reader); input != "" {
		settings.VersionSources = settings.VersionSources[:0]
		for _, path := range strings.Split(input, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			settings.VersionSources = append(settings.VersionSources, versionSourceFor(path))
		}
	}
	cmd.Println()

	// Step 3: forge
	cmd.Println("Step 3: GitHub Publishing")
	cmd.Println("-------------------------")
	cmd.Printf("Repository owner [%s]: ", settings.Forge.Owner)
	if input := readLine(reader); input != "" {
		settings.Forge.Owner = input
	}
	cmd.Printf("Repository name [%s]: ", settings.Forge.Repo)
	if input := readLine(reader); input != "" {
		settings.Forge.Repo = input
	}
	if settings.Forge.IsConfigured() {
		cmd.Print("API token (empty keeps current): ")
		if token := readPassword(); token != "" {
			settings.Forge.Token = token
		}
		cmd.Println()
	}
	cmd.Println()

	// Step 4: history retention
	cmd.Println("Step 4: History")
	cmd.Println("---------------")
	cmd.Printf("Entries kept per kind [%d]: ", settings.HistoryLimit)
	if input := readLine(reader); input != "" {
		if n, err := strconv.Atoi(input); err == nil && n > 0 {
			settings.HistoryLimit = n
		}
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsForge(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("API token (empty keeps current): ")
	token := readPassword()
	cmd.Println()

	if err := settingsService.SetForge(args[0], args[1], token); err != nil {
		return err
	}
	cmd.Printf("Publishing configured for %s/%s\n", args[0], args[1])
	return nil
}

func runSettingsLimit(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	limit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid limit %q", args[0])
	}
	if err := settingsService.SetHistoryLimit(limit); err != nil {
		return err
	}
	cmd.Printf("History retention set to %d entries per kind\n", limit)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// versionSourceFor infers the read/write strategy from the file name.
func versionSourceFor(path string) domain.VersionSource {
	kind := domain.VersionSourcePlain
	if strings.HasSuffix(path, "pyproject.toml") {
		kind = domain.VersionSourcePyproject
	}
	return domain.VersionSource{Path: path, Kind: kind}
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

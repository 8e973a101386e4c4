package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

var (
	bumpForce      bool
	bumpYes        bool
	bumpAllowDirty bool
	bumpPush       bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump [current|patch|minor|major|X.Y.Z]",
	Short: "Bump the project version",
	Long: `Bumps the project version across all configured version files.

Accepts a bump part (patch, minor, major, or the short aliases p, m, M),
an explicit X.Y.Z version, or "current" (alias "c") to print the current
version. Without arguments an interactive menu is shown.

After rewriting the version files the bump is committed and tagged,
gated by a confirmation prompt unless --yes is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBump,
}

func init() {
	bumpCmd.Flags().BoolVar(&bumpForce, "force", false, "allow an explicit version that is not greater than the current one")
	bumpCmd.Flags().BoolVarP(&bumpYes, "yes", "y", false, "skip confirmation prompts (a dirty tree still requires --allow-dirty)")
	bumpCmd.Flags().BoolVar(&bumpAllowDirty, "allow-dirty", false, "bump even with uncommitted changes")
	bumpCmd.Flags().BoolVar(&bumpPush, "push", false, "push the release commit and tag")
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, args []string) error {
	if bumpService == nil {
		return errors.New("bump service not configured")
	}

	if len(args) == 0 {
		// No argument: interactive selection.
		if !isInteractive() {
			return fmt.Errorf("%w: a bump part is required in non-interactive sessions", domain.ErrInvalidInput)
		}
		return launchTUI(cmd)
	}

	arg := args[0]
	if arg == "current" || arg == "c" {
		current, err := bumpService.Current(cmd.Context())
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		cmd.Println(current.String())
		return nil
	}

	req, err := parseBumpArg(arg)
	if err != nil {
		return err
	}
	req.Force = bumpForce
	req.AllowDirty = bumpAllowDirty

	plan, err := bumpService.Plan(cmd.Context(), req)
	if err != nil {
		return err
	}
	cmd.Printf("Current version: %s\n", plan.Current)
	cmd.Printf("New version:     %s\n", plan.Next)

	plan, err = applyWithDirtyPrompt(cmd, req)
	if err != nil {
		return err
	}

	for _, src := range plan.Sources {
		cmd.Printf("Updated %s\n", src.Path)
	}

	if !bumpYes && !confirm(cmd, fmt.Sprintf("Commit and tag %s?", plan.Next.TagName())) {
		cmd.Println("Version files updated; commit and tag skipped.")
		return nil
	}

	if releaseService == nil {
		return errors.New("release service not configured")
	}
	release, err := releaseService.Release(cmd.Context(), plan, driving.ReleaseOptions{Push: bumpPush})
	if err != nil {
		return err
	}

	cmd.Printf("Committed %s and tagged %s\n", shortHash(release.CommitHash), release.Tag)
	return nil
}

// applyWithDirtyPrompt applies the bump, asking for confirmation when
// the work tree is dirty and the session is interactive. Under --yes
// there is nobody to ask, so a dirty tree needs the explicit
// --allow-dirty flag.
func applyWithDirtyPrompt(cmd *cobra.Command, req driving.BumpRequest) (*driving.BumpPlan, error) {
	plan, err := bumpService.Apply(cmd.Context(), req)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, domain.ErrDirtyWorkTree) {
		return nil, err
	}
	if bumpYes || !isInteractive() {
		return nil, fmt.Errorf("%w (use --allow-dirty to bump anyway)", err)
	}

	cmd.Printf("Warning: %v\n", err)
	if !confirm(cmd, "The work tree has uncommitted changes. Bump anyway?") {
		return nil, err
	}

	req.AllowDirty = true
	return bumpService.Apply(cmd.Context(), req)
}

// parseBumpArg resolves a CLI argument into a bump request: a part name,
// one of its aliases, or an explicit X.Y.Z version.
func parseBumpArg(arg string) (driving.BumpRequest, error) {
	if part, err := domain.ParseBumpPart(arg); err == nil {
		return driving.BumpRequest{Part: part}, nil
	}

	explicit, err := domain.ParseVersion(arg)
	if err != nil {
		return driving.BumpRequest{}, fmt.Errorf(
			"%w (expected patch, minor, major or X.Y.Z)", err)
	}
	return driving.BumpRequest{Part: domain.BumpExplicit, Explicit: explicit}, nil
}

// shortHash abbreviates a commit hash for display.
func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

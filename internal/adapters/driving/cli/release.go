package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

var (
	releasePush    bool
	releasePublish bool
	releaseNotes   string
	releaseYes     bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Commit, tag and publish the current version",
	Long: `Creates the release for the version currently in the version files:
a release commit, an annotated vX.Y.Z tag, and optionally a push and a
GitHub release.

Run this after "zendev bump" when the bump was applied without
committing, or to re-drive the publishing side effects.`,
	RunE: runRelease,
}

func init() {
	releaseCmd.Flags().BoolVar(&releasePush, "push", false, "push the release commit and tag")
	releaseCmd.Flags().BoolVar(&releasePublish, "publish", false, "create a GitHub release for the tag")
	releaseCmd.Flags().StringVar(&releaseNotes, "notes", "", "release notes for the GitHub release")
	releaseCmd.Flags().BoolVarP(&releaseYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, _ []string) error {
	if releaseService == nil || bumpService == nil || settingsService == nil {
		return errors.New("release services not configured")
	}

	current, err := bumpService.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	plan := &driving.BumpPlan{
		Current: current,
		Next:    current,
		Sources: settings.VersionSources,
	}

	if !releaseYes && !confirm(cmd, fmt.Sprintf("Commit and tag %s?", current.TagName())) {
		cmd.Println("Release cancelled.")
		return nil
	}

	release, err := releaseService.Release(cmd.Context(), plan, driving.ReleaseOptions{
		Push:    releasePush,
		Publish: releasePublish,
		Notes:   releaseNotes,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Committed %s and tagged %s\n", shortHash(release.CommitHash), release.Tag)
	if releasePush {
		cmd.Println("Pushed commit and tag to origin.")
	}
	if release.Published {
		cmd.Printf("Published: %s\n", release.URL)
	}
	return nil
}

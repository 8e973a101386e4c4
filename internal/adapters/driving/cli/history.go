package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs and releases",
	RunE:  runHistoryRuns,
}

var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent check runs",
	RunE:  runHistoryRuns,
}

var historyReleasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List recent releases",
	RunE:  runHistoryReleases,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of entries")
	historyCmd.AddCommand(historyRunsCmd)
	historyCmd.AddCommand(historyReleasesCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryRuns(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	runs, err := historyService.Runs(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No recorded runs.")
		return nil
	}

	for i := range runs {
		run := &runs[i]
		cmd.Printf("%s  %-7s  %s  %s\n",
			run.StartedAt.Local().Format(time.DateTime),
			runOutcome(run),
			run.Duration().Round(10*time.Millisecond),
			runSummary(run))
	}
	return nil
}

func runHistoryReleases(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	releases, err := historyService.Releases(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(releases) == 0 {
		cmd.Println("No recorded releases.")
		return nil
	}

	for _, release := range releases {
		line := release.CreatedAt.Local().Format(time.DateTime) +
			"  " + release.PreviousVersion.String() + " -> " + release.Tag
		if release.Published {
			line += "  " + release.URL
		}
		cmd.Println(line)
	}
	return nil
}

// runOutcome classifies a run for the listing.
func runOutcome(run *domain.RunReport) string {
	switch {
	case run.Failed:
		return "failed"
	case run.Warnings() > 0:
		return "warned"
	default:
		return "passed"
	}
}

// runSummary names the steps and their outcomes compactly.
func runSummary(run *domain.RunReport) string {
	out := ""
	for i := range run.Results {
		result := &run.Results[i]
		if i > 0 {
			out += " "
		}
		out += result.StepID + ":" + string(result.Status)
	}
	return out
}

// Package history provides the run and release history view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/messages"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/styles"
	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// defaultLimit bounds how many entries are loaded per tab.
const defaultLimit = 20

// Tab identifies which history list is shown.
type Tab int

const (
	// TabRuns shows recorded check runs.
	TabRuns Tab = iota
	// TabReleases shows recorded releases.
	TabReleases
)

// View is the history view.
type View struct {
	styles         *styles.Styles
	historyService driving.HistoryService

	runs     []domain.RunReport
	releases []domain.Release
	tab      Tab
	loading  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, historyService driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:         s,
		historyService: historyService,
	}
}

// Init initialises the view and loads history.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadHistory()
}

// loadHistory returns a command that loads runs and releases.
func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if v.historyService == nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("history service not available")}
		}

		ctx := context.Background()
		runs, err := v.historyService.Runs(ctx, defaultLimit)
		if err != nil {
			return messages.HistoryLoaded{Err: err}
		}
		releases, err := v.historyService.Releases(ctx, defaultLimit)
		if err != nil {
			return messages.HistoryLoaded{Err: err}
		}
		return messages.HistoryLoaded{Runs: runs, Releases: releases}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "h", "l":
			if v.tab == TabRuns {
				v.tab = TabReleases
			} else {
				v.tab = TabRuns
			}
			return v, nil
		case "r":
			v.loading = true
			return v, v.loadHistory()
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.runs = msg.Runs
		v.releases = msg.Releases
		v.err = nil
		return v, nil
	}

	return v, nil
}

// View renders the history lists.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("History"))
	b.WriteString("\n\n")

	runsTab := v.styles.Muted.Render("Runs")
	releasesTab := v.styles.Muted.Render("Releases")
	if v.tab == TabRuns {
		runsTab = v.styles.Subtitle.Render("Runs")
	} else {
		releasesTab = v.styles.Subtitle.Render("Releases")
	}
	b.WriteString(runsTab + "  " + releasesTab)
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case v.tab == TabRuns:
		v.renderRuns(&b)
	default:
		v.renderReleases(&b)
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Tab] Switch  [r] Reload  [Esc] Back"))

	return b.String()
}

func (v *View) renderRuns(b *strings.Builder) {
	if len(v.runs) == 0 {
		b.WriteString(v.styles.Muted.Render("No recorded runs."))
		b.WriteString("\n")
		return
	}

	for i := range v.runs {
		run := &v.runs[i]
		outcome := v.styles.Success.Render("passed")
		if run.Failed {
			outcome = v.styles.Error.Render("failed")
		} else if run.Warnings() > 0 {
			outcome = v.styles.Warning.Render("warned")
		}
		line := fmt.Sprintf("%s  %s  %s",
			run.StartedAt.Local().Format(time.DateTime),
			outcome,
			run.Duration().Round(time.Millisecond))
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (v *View) renderReleases(b *strings.Builder) {
	if len(v.releases) == 0 {
		b.WriteString(v.styles.Muted.Render("No recorded releases."))
		b.WriteString("\n")
		return
	}

	for i := range v.releases {
		release := &v.releases[i]
		line := fmt.Sprintf("%s  %s -> %s",
			release.CreatedAt.Local().Format(time.DateTime),
			release.PreviousVersion,
			release.Tag)
		if release.Published {
			line += "  " + v.styles.Muted.Render(release.URL)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// CurrentTab returns the active history tab.
func (v *View) CurrentTab() Tab {
	return v.tab
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}

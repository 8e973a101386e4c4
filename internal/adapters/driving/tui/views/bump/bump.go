// Package bump provides the version bump workflow view for the TUI.
package bump

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/messages"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/styles"
	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// Phase tracks where the user is in the bump workflow.
type Phase int

const (
	// PhasePick is the bump part selection step.
	PhasePick Phase = iota
	// PhaseConfirm shows the computed plan and waits for confirmation.
	PhaseConfirm
	// PhaseDone shows the outcome of the applied bump.
	PhaseDone
)

// View is the version bump workflow view.
type View struct {
	styles         *styles.Styles
	bumpService    driving.BumpService
	releaseService driving.ReleaseService

	current    domain.Version
	hasCurrent bool
	parts      []domain.BumpPart
	selected   int
	plan       *driving.BumpPlan
	release    *domain.Release
	tagSkipped bool
	phase      Phase
	err        error
	width      int
	height     int
	ready      bool
}

// NewView creates a new bump view.
func NewView(s *styles.Styles, bumpService driving.BumpService, releaseService driving.ReleaseService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:         s,
		bumpService:    bumpService,
		releaseService: releaseService,
		parts:          domain.AllBumpParts(),
	}
}

// Init initialises the view and loads the current version.
func (v *View) Init() tea.Cmd {
	return v.loadCurrent()
}

// Reset returns the view to the part selection step.
func (v *View) Reset() {
	v.phase = PhasePick
	v.selected = 0
	v.plan = nil
	v.release = nil
	v.tagSkipped = false
	v.err = nil
}

// currentLoadedMsg carries the current project version.
type currentLoadedMsg struct {
	version domain.Version
	err     error
}

// plannedMsg carries the computed bump plan.
type plannedMsg struct {
	plan *driving.BumpPlan
	err  error
}

func (v *View) loadCurrent() tea.Cmd {
	return func() tea.Msg {
		if v.bumpService == nil {
			return currentLoadedMsg{err: fmt.Errorf("bump service not available")}
		}
		version, err := v.bumpService.Current(context.Background())
		return currentLoadedMsg{version: version, err: err}
	}
}

func (v *View) planBump(part domain.BumpPart) tea.Cmd {
	return func() tea.Msg {
		plan, err := v.bumpService.Plan(context.Background(), driving.BumpRequest{Part: part})
		return plannedMsg{plan: plan, err: err}
	}
}

func (v *View) applyBump(part domain.BumpPart, allowDirty bool) tea.Cmd {
	return func() tea.Msg {
		plan, err := v.bumpService.Apply(context.Background(), driving.BumpRequest{
			Part:       part,
			AllowDirty: allowDirty,
		})
		if err != nil {
			return messages.BumpApplied{Err: err}
		}
		return messages.BumpApplied{Previous: plan.Current, Version: plan.Next}
	}
}

func (v *View) tagRelease() tea.Cmd {
	plan := v.plan
	return func() tea.Msg {
		release, err := v.releaseService.Release(context.Background(), plan, driving.ReleaseOptions{})
		return messages.ReleaseCompleted{Release: release, Err: err}
	}
}

// Update handles messages for the bump view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case currentLoadedMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.current = msg.version
		v.hasCurrent = true
		v.err = nil
		return v, nil

	case plannedMsg:
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.plan = msg.plan
		v.phase = PhaseConfirm
		v.err = nil
		return v, nil

	case messages.BumpApplied:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if v.tagSkipped || v.releaseService == nil {
			v.phase = PhaseDone
			return v, nil
		}
		return v, v.tagRelease()

	case messages.ReleaseCompleted:
		if msg.Err != nil {
			v.err = msg.Err
		}
		v.release = msg.Release
		v.phase = PhaseDone
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.phase {
	case PhasePick:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.parts)-1 {
				v.selected++
			}
		case "enter":
			return v, v.planBump(v.parts[v.selected])
		case "esc":
			return v, backToMenu
		}
		return v, nil

	case PhaseConfirm:
		switch msg.String() {
		case "enter", "y":
			v.tagSkipped = false
			return v, v.applyBump(v.parts[v.selected], false)
		case "a":
			// Apply the bump without committing or tagging.
			v.tagSkipped = true
			return v, v.applyBump(v.parts[v.selected], false)
		case "d":
			// Retry with uncommitted changes allowed.
			if errors.Is(v.err, domain.ErrDirtyWorkTree) {
				return v, v.applyBump(v.parts[v.selected], true)
			}
		case "esc", "n":
			v.phase = PhasePick
			v.plan = nil
			v.err = nil
		}
		return v, nil

	case PhaseDone:
		switch msg.String() {
		case "enter", "esc":
			return v, backToMenu
		}
		return v, nil
	}

	return v, nil
}

func backToMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

// View renders the bump workflow.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Bump Version"))
	b.WriteString("\n\n")

	if v.hasCurrent {
		b.WriteString(v.styles.Muted.Render("Current version: "))
		b.WriteString(v.styles.Normal.Render(v.current.String()))
		b.WriteString("\n\n")
	}

	switch v.phase {
	case PhasePick:
		v.renderPick(&b)
	case PhaseConfirm:
		v.renderConfirm(&b)
	case PhaseDone:
		v.renderDone(&b)
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		if errors.Is(v.err, domain.ErrDirtyWorkTree) {
			b.WriteString("\n")
			b.WriteString(v.styles.Warning.Render("[d] bump anyway"))
		}
	}

	return b.String()
}

func (v *View) renderPick(b *strings.Builder) {
	for i, part := range v.parts {
		cursor := "  "
		label := fmt.Sprintf("%-7s %s", part, part.Description())
		if v.hasCurrent {
			label = fmt.Sprintf("%-7s %s -> %s", part, part.Description(), v.current.Bump(part))
		}
		line := v.styles.Normal.Render(label)
		if i == v.selected {
			cursor = "> "
			line = v.styles.Subtitle.Render(label)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [Esc] Back"))
}

func (v *View) renderConfirm(b *strings.Builder) {
	b.WriteString(v.styles.Normal.Render(
		fmt.Sprintf("Bump %s -> %s", v.plan.Current, v.plan.Next)))
	b.WriteString("\n\n")
	for _, src := range v.plan.Sources {
		b.WriteString(v.styles.Muted.Render("  will update " + src.Path))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Enter] Apply, commit and tag  [a] Apply only  [Esc] Back"))
}

func (v *View) renderDone(b *strings.Builder) {
	b.WriteString(v.styles.Success.Render("Version bumped."))
	b.WriteString("\n")
	if v.release != nil {
		b.WriteString(v.styles.Normal.Render(
			fmt.Sprintf("Committed and tagged %s", v.release.Tag)))
		b.WriteString("\n")
	} else if v.tagSkipped {
		b.WriteString(v.styles.Muted.Render("Commit and tag skipped."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Enter] Back to menu"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// CurrentPhase returns the current workflow phase.
func (v *View) CurrentPhase() Phase {
	return v.phase
}

// Plan returns the computed bump plan, if any.
func (v *View) Plan() *driving.BumpPlan {
	return v.plan
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}

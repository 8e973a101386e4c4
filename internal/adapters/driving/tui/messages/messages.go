// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/zenith-framework/zendev/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewBump is the version bump workflow view.
	ViewBump
	// ViewCheck is the check pipeline view.
	ViewCheck
	// ViewHistory is the run and release history view.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewBump:
		return "bump"
	case ViewCheck:
		return "check"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CheckCompleted carries a finished pipeline run back to the model.
type CheckCompleted struct {
	Report *domain.RunReport
	Err    error
}

// BumpApplied signals the version sources were rewritten.
type BumpApplied struct {
	Previous domain.Version
	Version  domain.Version
	Err      error
}

// ReleaseCompleted signals the bump was committed and tagged.
type ReleaseCompleted struct {
	Release *domain.Release
	Err     error
}

// HistoryLoaded carries recorded runs and releases from the service.
type HistoryLoaded struct {
	Runs     []domain.RunReport
	Releases []domain.Release
	Err      error
}

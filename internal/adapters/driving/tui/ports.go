// Package tui provides an interactive terminal user interface for zendev.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Bump manages the project version.
	Bump driving.BumpService

	// Check runs the check pipeline.
	Check driving.CheckOrchestrator

	// Release creates release commits and tags.
	Release driving.ReleaseService

	// History exposes recorded runs and releases.
	History driving.HistoryService

	// Settings manages tool settings.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil. Release and Settings are
// optional; the views that need them degrade gracefully.
func (p *Ports) Validate() error {
	if p.Bump == nil {
		return ErrMissingBumpService
	}
	if p.Check == nil {
		return ErrMissingCheckOrchestrator
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	return nil
}

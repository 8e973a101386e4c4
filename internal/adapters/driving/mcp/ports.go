package mcp

import (
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Bump manages the project version.
	Bump driving.BumpService

	// Check runs the check pipeline.
	Check driving.CheckOrchestrator

	// History exposes recorded runs and releases.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Bump == nil {
		return ErrMissingBumpService
	}
	if p.Check == nil {
		return ErrMissingCheckOrchestrator
	}
	// History is optional; the resources degrade to empty lists.
	return nil
}

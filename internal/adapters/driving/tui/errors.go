package tui

import "errors"

// ErrMissingBumpService is returned when the bump service is not provided.
var ErrMissingBumpService = errors.New("tui: bump service is required")

// ErrMissingCheckOrchestrator is returned when the check orchestrator is not provided.
var ErrMissingCheckOrchestrator = errors.New("tui: check orchestrator is required")

// ErrMissingHistoryService is returned when the history service is not provided.
var ErrMissingHistoryService = errors.New("tui: history service is required")

package mcp

import "errors"

// ErrMissingBumpService is returned when the bump service is not provided.
var ErrMissingBumpService = errors.New("mcp: bump service is required")

// ErrMissingCheckOrchestrator is returned when the check orchestrator is not provided.
var ErrMissingCheckOrchestrator = errors.New("mcp: check orchestrator is required")

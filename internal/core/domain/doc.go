// Package domain defines the core business entities for zendev.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Version: A semantic project version
//   - Step: A single check-pipeline command
//   - RunReport: The outcome of a pipeline run
//   - Release: A tagged, optionally published release
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

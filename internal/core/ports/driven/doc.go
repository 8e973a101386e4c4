// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - VCS: Git repository state and side effects
//   - CommandRunner: Executes pipeline step commands
//   - VersionSourceStore: Reads and rewrites project version files
//   - HistoryStore: Run and release history persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReleasePublisher: Creates forge releases. Without it, releases are
//     tagged locally only.
//   - Watcher: File change notifications. Without it, check --watch is
//     unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

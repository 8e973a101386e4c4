// Package sqlite provides the SQLite-based implementation of the
// driven.HistoryStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It persists
// check runs with their per-step results and the release log.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.zendev/data/history.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite

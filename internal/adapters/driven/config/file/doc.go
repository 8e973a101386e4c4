// Package file provides a TOML file-backed implementation of the
// driven.ConfigStore port.
//
// Configuration lives in config.toml inside the zendev config directory
// (~/.zendev by default). Nested TOML tables are flattened into
// dot-notation keys on load, so callers address values as e.g.
// "forge.owner" regardless of nesting.
package file

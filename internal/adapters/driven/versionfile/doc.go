// Package versionfile implements the driven.VersionSourceStore port.
//
// It reads and rewrites the files a project stores its version in:
// pyproject.toml ([project].version) and plain version files whose whole
// content is the version string. Rewrites are line-based so comments and
// formatting in pyproject.toml survive a bump.
package versionfile

package domain

import (
	"fmt"
	"regexp"
)

// versionPattern is the accepted version grammar.
// Prerelease and build metadata are deliberately not accepted: release
// versions of the project are always plain X.Y.Z.
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is a semantic project version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses an X.Y.Z string into a Version.
// Returns ErrInvalidVersion for anything that does not match the grammar.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var v Version
	// The pattern guarantees digit-only groups; Sscanf cannot fail here
	// except on overflow, which we treat as invalid too.
	if _, err := fmt.Sscanf(s, "%d.%d.%d", &v.Major, &v.Minor, &v.Patch); err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return v, nil
}

// IsValidVersion reports whether s matches the X.Y.Z grammar.
func IsValidVersion(s string) bool {
	return versionPattern.MatchString(s)
}

// String returns the X.Y.Z representation.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// TagName returns the git tag for this version (vX.Y.Z).
func (v Version) TagName() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or 1 comparing v against other.
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	return compareInt(v.Patch, other.Patch)
}

// GreaterThan reports whether v is strictly newer than other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Bump returns the next version for the given part.
// Lower parts reset to zero.
func (v Version) Bump(part BumpPart) Version {
	switch part {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// BumpPart identifies which version component to increment.
type BumpPart string

// Available bump parts.
const (
	// BumpPatch increments the patch component.
	BumpPatch BumpPart = "patch"

	// BumpMinor increments the minor component and resets patch.
	BumpMinor BumpPart = "minor"

	// BumpMajor increments the major component and resets minor and patch.
	BumpMajor BumpPart = "major"

	// BumpExplicit sets an exact version supplied by the user.
	BumpExplicit BumpPart = "explicit"
)

// IsValid returns true if the bump part is recognised.
func (p BumpPart) IsValid() bool {
	switch p {
	case BumpPatch, BumpMinor, BumpMajor, BumpExplicit:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p BumpPart) String() string {
	return string(p)
}

// Description returns a human-readable description of the bump part.
func (p BumpPart) Description() string {
	switch p {
	case BumpPatch:
		return "Patch (bug fixes)"
	case BumpMinor:
		return "Minor (new features)"
	case BumpMajor:
		return "Major (breaking changes)"
	case BumpExplicit:
		return "Explicit version"
	default:
		return "Unknown"
	}
}

// ParseBumpPart resolves a CLI argument into a bump part.
// Accepts the short aliases used by the original tooling
// (p, m, M). Returns ErrInvalidInput for unknown arguments.
func ParseBumpPart(arg string) (BumpPart, error) {
	switch arg {
	case "patch", "p":
		return BumpPatch, nil
	case "minor", "m":
		return BumpMinor, nil
	case "major", "M":
		return BumpMajor, nil
	default:
		return "", fmt.Errorf("%w: unknown bump part %q", ErrInvalidInput, arg)
	}
}

// AllBumpParts returns the selectable bump parts in menu order.
func AllBumpParts() []BumpPart {
	return []BumpPart{
		BumpPatch,
		BumpMinor,
		BumpMajor,
	}
}

// Package git implements the driven.VCS port on top of the git
// executable.
//
// Every operation shells out to git in the project directory. A missing
// repository is surfaced as domain.ErrNotARepository so callers can
// present it as a user error rather than an infrastructure failure.
package git

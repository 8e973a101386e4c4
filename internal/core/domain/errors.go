package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidVersion indicates a string is not a valid X.Y.Z version.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrVersionNotGreater indicates an explicit version does not advance
	// past the current one.
	ErrVersionNotGreater = errors.New("version is not greater than current")

	// Repository Errors.

	// ErrNotARepository indicates the working directory is not inside a git repository.
	ErrNotARepository = errors.New("not a git repository")

	// ErrDirtyWorkTree indicates uncommitted changes block a release operation.
	ErrDirtyWorkTree = errors.New("working tree has uncommitted changes")

	// ErrTagExists indicates the release tag already exists.
	ErrTagExists = errors.New("tag already exists")

	// Pipeline Errors.

	// ErrRunInProgress indicates a check run is already executing.
	ErrRunInProgress = errors.New("check run in progress")

	// ErrStepFailed indicates a critical pipeline step failed.
	// The step result carries the exit code and captured output.
	ErrStepFailed = errors.New("step failed")

	// ErrNoSteps indicates the pipeline has no steps configured.
	ErrNoSteps = errors.New("no pipeline steps configured")

	// Publishing Errors.

	// ErrPublishUnavailable indicates no GitHub repository or token is configured.
	// Releases are still tagged locally without it.
	ErrPublishUnavailable = errors.New("release publishing not configured")
)

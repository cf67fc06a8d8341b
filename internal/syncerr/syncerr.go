// Package syncerr defines the user-facing configuration errors of a sync run.
//
// Every error type in this package matches ErrSync through errors.Is, so the
// command line can tell configuration problems apart from internal failures
// without knowing each concrete type.
package syncerr

import (
	"errors"
	"fmt"
)

// ErrSync is matched by every configuration error raised during a sync run.
var ErrSync = errors.New("sync-pre-commit-with-uv error")

// ManifestConfigurationError reports an invalid rule in pyproject.toml.
type ManifestConfigurationError struct {
	Reason string
}

func (e *ManifestConfigurationError) Error() string {
	return fmt.Sprintf("pyproject.toml configuration error: %s", e.Reason)
}

func (e *ManifestConfigurationError) Is(target error) bool { return target == ErrSync }

// PreCommitConfigurationError reports a malformed repo or hook entry in the
// pre-commit configuration.
type PreCommitConfigurationError struct {
	Reason string
}

func (e *PreCommitConfigurationError) Error() string {
	return fmt.Sprintf(".pre-commit-config.yaml configuration error: %s", e.Reason)
}

func (e *PreCommitConfigurationError) Is(target error) bool { return target == ErrSync }

// PackageNotFoundError is returned when a rule requires a locked package that
// uv.lock does not contain.
type PackageNotFoundError struct {
	Package string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("Package %s referenced in pyproject.toml but not found in uv.lock", e.Package)
}

func (e *PackageNotFoundError) Is(target error) bool { return target == ErrSync }

// PathDoesNotExistError is returned when an input file is missing.
type PathDoesNotExistError struct {
	Path string
}

func (e *PathDoesNotExistError) Error() string {
	return fmt.Sprintf("Path '%s' does not exist.", e.Path)
}

func (e *PathDoesNotExistError) Is(target error) bool { return target == ErrSync }

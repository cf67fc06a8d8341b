// Package naming derives the identifiers used to join pre-commit repos,
// pyproject rules and locked packages.
package naming

import (
	"regexp"
	"strings"
)

var separatorRun = regexp.MustCompile(`[-_.]+`)

// RepoName returns the repo key of a pre-commit repository URL: the last path
// segment without a trailing slash or ".git" suffix.
// For example: https://github.com/psf/black.git/ -> black
func RepoName(repoURL string) string {
	trimmed := strings.TrimRight(repoURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSuffix(trimmed, ".git")
}

// Canonicalize normalizes a Python package name the way package indexes do:
// runs of "-", "_" and "." become a single "-" and the result is lowercased.
func Canonicalize(name string) string {
	return strings.ToLower(separatorRun.ReplaceAllString(name, "-"))
}

// PackageNameFromRepo guesses the package name of a repo key by dropping the
// usual pre-commit wrapper affixes.
func PackageNameFromRepo(repoName string) string {
	name := strings.TrimPrefix(repoName, "pre-commit-")
	name = strings.TrimPrefix(name, "mirrors-")
	name = strings.TrimSuffix(name, "-pre-commit")
	return Canonicalize(name)
}

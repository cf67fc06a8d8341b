package pyproject

import (
	"github.com/schaermu/sync-pre-commit-with-uv/internal/naming"
)

// Rule describes how one pre-commit repository is kept in sync with uv.lock.
// It is read from a [tool.sync-pre-commit-with-uv.<repo>] table.
type Rule struct {
	// RepoName is the table key; it is matched against naming.RepoName of
	// the pre-commit repo URL.
	RepoName string
	// PackageName overrides the package name derived from RepoName.
	PackageName    string
	SyncRevision   bool
	FailIfNotFound bool
	// Export holds the uv export arguments used to compute the hooks'
	// additional_dependencies.
	Export ExportArgs
}

// DefaultRule returns the rule applied to a pre-commit repo that has no
// table in pyproject.toml. It syncs the revision when a package matches but
// never fails when none does.
func DefaultRule(repoName string) Rule {
	return Rule{
		RepoName:       repoName,
		SyncRevision:   true,
		FailIfNotFound: false,
	}
}

// FinalPackageName returns the name looked up in uv.lock: the explicit
// package name when set, otherwise one derived from the repo name.
func (r Rule) FinalPackageName() string {
	if r.PackageName != "" {
		return r.PackageName
	}
	return naming.PackageNameFromRepo(r.RepoName)
}

// ExportArgs is the additional_dependencies_uv_params option. It is either
// unset, a single argument list shared by every hook of the repo, or a list
// per hook id.
type ExportArgs struct {
	set     bool
	all     []string
	perHook map[string][]string
}

// ExportForAllHooks returns export arguments applied to every hook.
func ExportForAllHooks(args []string) ExportArgs {
	if args == nil {
		args = []string{}
	}
	return ExportArgs{set: true, all: args}
}

// ExportPerHook returns export arguments keyed by hook id. Hooks without an
// entry are left alone.
func ExportPerHook(args map[string][]string) ExportArgs {
	if args == nil {
		args = map[string][]string{}
	}
	return ExportArgs{set: true, perHook: args}
}

// IsSet reports whether the option was configured at all.
func (a ExportArgs) IsSet() bool { return a.set }

// IsPerHook reports whether the arguments are keyed by hook id.
func (a ExportArgs) IsPerHook() bool { return a.perHook != nil }

// ForHook returns the export arguments for the given hook id and whether the
// hook should be synced.
func (a ExportArgs) ForHook(hookID string) ([]string, bool) {
	if !a.set {
		return nil, false
	}
	if a.perHook != nil {
		args, ok := a.perHook[hookID]
		return args, ok
	}
	return a.all, true
}

package sync

import (
	"fmt"
	"strings"

	"github.com/schaermu/sync-pre-commit-with-uv/internal/precommit"
)

// UpdateKind selects the edit an Update performs.
type UpdateKind int

const (
	// UpdateRevision sets the rev of a repo.
	UpdateRevision UpdateKind = iota + 1
	// UpdateAdditionalDependencies replaces the additional_dependencies of
	// a hook.
	UpdateAdditionalDependencies
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateRevision:
		return "rev"
	case UpdateAdditionalDependencies:
		return "additional_dependencies"
	default:
		return fmt.Sprintf("UpdateKind(%d)", int(k))
	}
}

// Update is a single idempotent edit of the pre-commit configuration.
type Update struct {
	Kind UpdateKind
	// Repo is the URL of the repo entry to edit.
	Repo string
	// HookID is set for UpdateAdditionalDependencies.
	HookID       string
	Revision     string
	Dependencies []string
	// Target is the repo node the update was planned against.
	Target precommit.NodeID
}

// Apply performs the edit on doc.
func (u Update) Apply(doc *precommit.Document) error {
	switch u.Kind {
	case UpdateRevision:
		return doc.SetRevision(u.Repo, u.Revision)
	case UpdateAdditionalDependencies:
		return doc.SetAdditionalDependencies(u.Repo, u.HookID, u.Dependencies)
	default:
		return fmt.Errorf("unknown update kind %d", int(u.Kind))
	}
}

func (u Update) String() string {
	switch u.Kind {
	case UpdateRevision:
		return fmt.Sprintf("%s: rev -> %s", u.Repo, u.Revision)
	case UpdateAdditionalDependencies:
		return fmt.Sprintf("%s[%s]: additional_dependencies -> [%s]", u.Repo, u.HookID, strings.Join(u.Dependencies, ", "))
	default:
		return u.Kind.String()
	}
}

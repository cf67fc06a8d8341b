package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/schaermu/sync-pre-commit-with-uv/internal/syncerr"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/uv"
)

// PlanUpdates derives the edits needed for each join, in join order. A rule
// that requires a package missing from uv.lock fails the whole plan with
// *syncerr.PackageNotFoundError; exporter failures abort it as well.
func PlanUpdates(ctx context.Context, joins []Join, exporter uv.Exporter) ([]Update, error) {
	var updates []Update
	for _, join := range joins {
		if join.Rule.SyncRevision {
			update, ok, err := planRevision(join)
			if err != nil {
				return nil, err
			}
			if ok {
				updates = append(updates, update)
			}
		}

		if join.Rule.Export.IsSet() {
			deps, err := planDependencies(ctx, join, exporter)
			if err != nil {
				return nil, err
			}
			updates = append(updates, deps...)
		}
	}
	return updates, nil
}

func planRevision(join Join) (Update, bool, error) {
	if join.Locked == nil {
		if join.Rule.FailIfNotFound {
			return Update{}, false, &syncerr.PackageNotFoundError{Package: join.Rule.FinalPackageName()}
		}
		return Update{}, false, nil
	}

	rev := join.Locked.Version
	if strings.HasPrefix(join.Repo.Rev, "v") {
		rev = "v" + rev
	}
	if rev == join.Repo.Rev {
		return Update{}, false, nil
	}

	return Update{
		Kind:     UpdateRevision,
		Repo:     join.Repo.URL,
		Revision: rev,
		Target:   join.Repo.Node,
	}, true, nil
}

func planDependencies(ctx context.Context, join Join, exporter uv.Exporter) ([]Update, error) {
	var updates []Update
	for _, hook := range join.Repo.Hooks {
		args, ok := join.Rule.Export.ForHook(hook.ID)
		if !ok {
			continue
		}

		deps, err := exporter.Export(ctx, args)
		if err != nil {
			return nil, fmt.Errorf("failed to export dependencies for hook %s of %s: %w", hook.ID, join.Repo.URL, err)
		}

		updates = append(updates, Update{
			Kind:         UpdateAdditionalDependencies,
			Repo:         join.Repo.URL,
			HookID:       hook.ID,
			Dependencies: deps,
			Target:       join.Repo.Node,
		})
	}
	return updates, nil
}

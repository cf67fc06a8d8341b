// Package sync reconciles .pre-commit-config.yaml with pyproject.toml rules
// and the packages pinned in uv.lock.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schaermu/sync-pre-commit-with-uv/internal/config"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/precommit"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/pyproject"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/uv"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/uvlock"
)

// Engine orchestrates a sync run
type Engine struct {
	cfg      *config.Config
	exporter uv.Exporter
	logger   *slog.Logger
	dryRun   bool
}

// NewEngine creates a new sync engine
func NewEngine(cfg *config.Config, exporter uv.Exporter, logger *slog.Logger, dryRun bool) *Engine {
	return &Engine{
		cfg:      cfg,
		exporter: exporter,
		logger:   logger,
		dryRun:   dryRun,
	}
}

// Result summarizes a run.
type Result struct {
	Updates []Update
	// Written reports whether the pre-commit config was rewritten.
	Written bool
}

// Run executes the complete sync process. Errors from the syncerr package
// are returned as they are.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.logger.Info("starting sync",
		"pyproject", e.cfg.Paths.Pyproject,
		"pre_commit", e.cfg.Paths.PreCommit,
		"uv_lock", e.cfg.Paths.UVLock,
		"dry_run", e.dryRun)

	result := &Result{}
	written, err := precommit.WithDocument(e.cfg.Paths.PreCommit, func(doc *precommit.Document) error {
		updates, err := e.plan(ctx, doc)
		if err != nil {
			return err
		}
		result.Updates = updates

		e.logger.Info("sync plan", "updates", len(updates))
		if e.dryRun {
			e.logPlanDetails(doc, updates)
			return nil
		}

		for _, u := range updates {
			e.logger.Debug("applying update", "update", u.String())
			if err := u.Apply(doc); err != nil {
				return fmt.Errorf("failed to apply %s: %w", u, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Written = written

	switch {
	case e.dryRun:
		e.logger.Info("dry-run complete, no changes applied")
	case written:
		e.logger.Info("pre-commit config updated", "path", e.cfg.Paths.PreCommit, "updates", len(result.Updates))
	default:
		e.logger.Info("pre-commit config already in sync", "path", e.cfg.Paths.PreCommit)
	}
	return result, nil
}

// plan loads the rules and lock file, joins them with the repos of doc and
// derives the updates.
func (e *Engine) plan(ctx context.Context, doc *precommit.Document) ([]Update, error) {
	rules, err := pyproject.Load(e.cfg.Paths.Pyproject)
	if err != nil {
		return nil, err
	}

	repos, err := doc.Repos()
	if err != nil {
		return nil, err
	}

	packages, err := uvlock.Load(e.cfg.Paths.UVLock)
	if err != nil {
		return nil, err
	}

	e.logger.Info("loaded configuration",
		"rules", len(rules),
		"repos", len(repos),
		"packages", len(packages))

	joins := MapRepos(repos, rules, packages)
	for _, name := range duplicateRepoNames(joins) {
		e.logger.Warn("several pre-commit repos resolve to the same name; each is synced with the same rule", "repo_name", name)
	}

	updates, err := PlanUpdates(ctx, joins, e.exporter)
	if err != nil {
		return nil, err
	}

	for _, u := range updates {
		e.logger.Debug("planned update", "kind", u.Kind.String(), "repo", u.Repo, "line", lineOf(doc, u.Target), "update", u.String())
	}
	return updates, nil
}

// logPlanDetails logs each update of a dry run
func (e *Engine) logPlanDetails(doc *precommit.Document, updates []Update) {
	for _, u := range updates {
		e.logger.Info("[dry-run] would apply", "update", u.String(), "line", lineOf(doc, u.Target))
	}
}

func lineOf(doc *precommit.Document, id precommit.NodeID) int {
	if n := doc.Node(id); n != nil {
		return n.Line
	}
	return 0
}

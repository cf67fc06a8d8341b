package sync

import (
	"github.com/schaermu/sync-pre-commit-with-uv/internal/naming"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/precommit"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/pyproject"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/uvlock"
)

// Join ties a pre-commit repo to the rule that governs it and the locked
// package it resolves to.
type Join struct {
	Repo precommit.Repo
	Rule pyproject.Rule
	// Locked is nil when uv.lock has no package with the rule's name.
	Locked *uvlock.Package
}

// MapRepos joins every pre-commit repo, in order, with its rule and locked
// package. Repos without a rule get pyproject.DefaultRule.
func MapRepos(repos []precommit.Repo, rules []pyproject.Rule, packages []uvlock.Package) []Join {
	rulesByName := make(map[string]pyproject.Rule, len(rules))
	for _, rule := range rules {
		rulesByName[rule.RepoName] = rule
	}

	packagesByName := make(map[string]uvlock.Package, len(packages))
	for _, pkg := range packages {
		packagesByName[pkg.Name] = pkg
	}

	joins := make([]Join, 0, len(repos))
	for _, repo := range repos {
		repoName := naming.RepoName(repo.URL)

		rule, ok := rulesByName[repoName]
		if !ok {
			rule = pyproject.DefaultRule(repoName)
		}

		join := Join{Repo: repo, Rule: rule}
		if pkg, ok := packagesByName[rule.FinalPackageName()]; ok {
			join.Locked = &pkg
		}
		joins = append(joins, join)
	}

	return joins
}

// duplicateRepoNames returns repo names claimed by more than one join, in
// first-seen order.
func duplicateRepoNames(joins []Join) []string {
	counts := make(map[string]int, len(joins))
	var order []string
	for _, j := range joins {
		name := j.Rule.RepoName
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	var dups []string
	for _, name := range order {
		if counts[name] > 1 {
			dups = append(dups, name)
		}
	}
	return dups
}

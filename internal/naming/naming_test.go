package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepoName(t *testing.T) {
	for _, tc := range []struct {
		url  string
		want string
	}{
		{url: "https://github.com/psf/black", want: "black"},
		{url: "https://github.com/psf/black/", want: "black"},
		{url: "https://github.com/psf/black.git", want: "black"},
		{url: "git@github.com:pre-commit/mirrors-mypy.git", want: "mirrors-mypy"},
		{url: "https://github.com/astral-sh/ruff-pre-commit//", want: "ruff-pre-commit"},
		{url: "local", want: "local"},
	} {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.want, RepoName(tc.url))
		})
	}
}

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, "types-requests", Canonicalize("types_requests"))
	assert.Equal(t, "zope-interface", Canonicalize("Zope.Interface"))
	assert.Equal(t, "foo-bar", Canonicalize("foo-_.-bar"))
	assert.Equal(t, "black", Canonicalize("black"))
}

func TestPackageNameFromRepo(t *testing.T) {
	for _, tc := range []struct {
		repo string
		want string
	}{
		{repo: "my-repo", want: "my-repo"},
		{repo: "pre-commit-hooks", want: "hooks"},
		{repo: "mirrors-mypy", want: "mypy"},
		{repo: "black-pre-commit", want: "black"},
		{repo: "pre-commit-mirrors-prettier", want: "prettier"},
		{repo: "ruff-pre-commit", want: "ruff"},
		{repo: "Flake8_Bugbear", want: "flake8-bugbear"},
	} {
		t.Run(tc.repo, func(t *testing.T) {
			assert.Equal(t, tc.want, PackageNameFromRepo(tc.repo))
		})
	}
}

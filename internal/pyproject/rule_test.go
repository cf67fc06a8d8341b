package pyproject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRule_FinalPackageName(t *testing.T) {
	for _, tc := range []struct {
		repoName    string
		packageName string
		want        string
	}{
		{repoName: "my-repo", want: "my-repo"},
		{repoName: "pre-commit-hooks", want: "hooks"},
		{repoName: "mirrors-mypy", want: "mypy"},
		{repoName: "black-pre-commit", want: "black"},
		{repoName: "pre-commit-mirrors-prettier", want: "prettier"},
		{repoName: "custom-name", packageName: "specific-package", want: "specific-package"},
		{repoName: "pyright-python", packageName: "PyRight", want: "PyRight"},
	} {
		t.Run(tc.repoName, func(t *testing.T) {
			rule := Rule{RepoName: tc.repoName, PackageName: tc.packageName}
			assert.Equal(t, tc.want, rule.FinalPackageName())
		})
	}
}

func TestDefaultRule(t *testing.T) {
	rule := DefaultRule("black")
	assert.Equal(t, "black", rule.RepoName)
	assert.True(t, rule.SyncRevision)
	assert.False(t, rule.FailIfNotFound)
	assert.False(t, rule.Export.IsSet())
}

func TestExportArgs_ForHook(t *testing.T) {
	var unset ExportArgs
	_, ok := unset.ForHook("black")
	assert.False(t, ok)

	all := ExportForAllHooks([]string{"--group", "dev"})
	args, ok := all.ForHook("black")
	assert.True(t, ok)
	assert.Equal(t, []string{"--group", "dev"}, args)

	perHook := ExportPerHook(map[string][]string{"hook1": {"--group", "a"}})
	args, ok = perHook.ForHook("hook1")
	assert.True(t, ok)
	assert.Equal(t, []string{"--group", "a"}, args)
	_, ok = perHook.ForHook("hook2")
	assert.False(t, ok)
}

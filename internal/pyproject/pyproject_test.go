package pyproject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schaermu/sync-pre-commit-with-uv/internal/syncerr"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name string
		toml string
		want []Rule
	}{
		{
			name: "empty table",
			toml: "[tool.sync-pre-commit-with-uv.black]\n",
			want: []Rule{{RepoName: "black", SyncRevision: true, FailIfNotFound: true}},
		},
		{
			name: "options",
			toml: `
[tool.sync-pre-commit-with-uv.black]
pypi_package_name = "black"

[tool.sync-pre-commit-with-uv.ruff]
sync_revision = false
fail_if_not_found = false
`,
			want: []Rule{
				{RepoName: "black", PackageName: "black", SyncRevision: true, FailIfNotFound: true},
				{RepoName: "ruff", SyncRevision: false, FailIfNotFound: false},
			},
		},
		{
			name: "no section",
			toml: "[tool]\n",
			want: []Rule{},
		},
		{
			name: "empty document",
			toml: "",
			want: []Rule{},
		},
		{
			name: "other tools ignored",
			toml: `
[project]
name = "demo"

[tool.ruff]
line-length = 100
`,
			want: []Rule{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := Parse([]byte(tc.toml))
			require.NoError(t, err)
			assert.Equal(t, tc.want, rules)
		})
	}
}

func TestParse_PreservesDeclarationOrder(t *testing.T) {
	rules, err := Parse([]byte(`
[tool.sync-pre-commit-with-uv.zeta]
[tool.sync-pre-commit-with-uv.alpha]
[tool.sync-pre-commit-with-uv.mirrors-mypy]
`))
	require.NoError(t, err)

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.RepoName)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mirrors-mypy"}, names)
}

func TestParse_ExportArgsList(t *testing.T) {
	rules, err := Parse([]byte(`
[tool.sync-pre-commit-with-uv.mypy]
additional_dependencies_uv_params = ["--only-group", "types"]
`))
	require.NoError(t, err)
	require.Len(t, rules, 1)

	export := rules[0].Export
	require.True(t, export.IsSet())
	assert.False(t, export.IsPerHook())

	args, ok := export.ForHook("anything")
	require.True(t, ok)
	assert.Equal(t, []string{"--only-group", "types"}, args)
}

func TestParse_ExportArgsPerHook(t *testing.T) {
	rules, err := Parse([]byte(`
[tool.sync-pre-commit-with-uv.pyright-python]
pypi_package_name = "pyright"
additional_dependencies_uv_params = { pyright = ["--only-group", "types"] }
`))
	require.NoError(t, err)
	require.Len(t, rules, 1)

	export := rules[0].Export
	require.True(t, export.IsSet())
	assert.True(t, export.IsPerHook())

	args, ok := export.ForHook("pyright")
	require.True(t, ok)
	assert.Equal(t, []string{"--only-group", "types"}, args)

	_, ok = export.ForHook("pyright-verify")
	assert.False(t, ok)
}

func TestParse_ExportArgsSubTable(t *testing.T) {
	rules, err := Parse([]byte(`
[tool.sync-pre-commit-with-uv.ruff-pre-commit.additional_dependencies_uv_params]
ruff = ["--group", "lint"]
ruff-format = []
`))
	require.NoError(t, err)
	require.Len(t, rules, 1)

	args, ok := rules[0].Export.ForHook("ruff-format")
	require.True(t, ok)
	assert.Empty(t, args)
}

func TestParse_ValidationErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		toml string
		want string
	}{
		{
			name: "wrong type",
			toml: "[tool.sync-pre-commit-with-uv.invalid-repo]\npypi_package_name = 123\n",
			want: "invalid-repo",
		},
		{
			name: "unknown field",
			toml: "[tool.sync-pre-commit-with-uv.black]\nsync_rev = true\n",
			want: `unknown field "sync_rev"`,
		},
		{
			name: "bad export args",
			toml: "[tool.sync-pre-commit-with-uv.black]\nadditional_dependencies_uv_params = 3\n",
			want: "additional_dependencies_uv_params",
		},
		{
			name: "export list of non strings",
			toml: "[tool.sync-pre-commit-with-uv.black]\nadditional_dependencies_uv_params = [1, 2]\n",
			want: "additional_dependencies_uv_params",
		},
		{
			name: "export args string",
			toml: "[tool.sync-pre-commit-with-uv.black]\nadditional_dependencies_uv_params = \"--group x\"\n",
			want: "additional_dependencies_uv_params",
		},
		{
			name: "per hook args not a list",
			toml: "[tool.sync-pre-commit-with-uv.black.additional_dependencies_uv_params]\nblack = \"--group x\"\n",
			want: "additional_dependencies_uv_params.black",
		},
		{
			name: "per hook list of non strings",
			toml: "[tool.sync-pre-commit-with-uv.black]\nadditional_dependencies_uv_params = { black = [1] }\n",
			want: "additional_dependencies_uv_params.black",
		},
		{
			name: "rule is not a table",
			toml: "[tool.sync-pre-commit-with-uv]\nblack = true\n",
			want: "black",
		},
		{
			name: "section is not a table",
			toml: "[tool]\nsync-pre-commit-with-uv = 1\n",
			want: "tool.sync-pre-commit-with-uv must be a table",
		},
		{
			name: "section is a list",
			toml: "[tool]\nsync-pre-commit-with-uv = [\"black\"]\n",
			want: "tool.sync-pre-commit-with-uv must be a table",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.toml))
			require.Error(t, err)

			var cfgErr *syncerr.ManifestConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte("[tool.sync-pre-commit-with-uv.black\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, syncerr.ErrSync)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tool.sync-pre-commit-with-uv.black]\n"), 0o644))

	rules, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "black", rules[0].RepoName)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

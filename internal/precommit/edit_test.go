package precommit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, doc *Document) string {
	t.Helper()
	out, err := doc.Bytes()
	require.NoError(t, err)
	return string(out)
}

func TestSetRevision(t *testing.T) {
	doc := parse(t, `repos:
  - repo: https://github.com/foo/bar
    rev: v1.0.0
    hooks:
      - id: bar
`)

	require.NoError(t, doc.SetRevision("https://github.com/foo/bar", "v2.0.0"))

	repos, err := doc.Repos()
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", repos[0].Rev)
}

func TestSetRevision_InsertsMissingRev(t *testing.T) {
	doc := parse(t, `repos:
  - repo: https://github.com/foo/bar
    hooks:
      - id: bar
`)

	require.NoError(t, doc.SetRevision("https://github.com/foo/bar", "2.0.0"))

	assert.Equal(t, `repos:
  - repo: https://github.com/foo/bar
    rev: 2.0.0
    hooks:
      - id: bar
`, encode(t, doc))
}

func TestSetRevision_FirstMatchOnly(t *testing.T) {
	doc := parse(t, `repos:
  - repo: https://github.com/foo/bar
    rev: v1
    hooks: []
  - repo: https://github.com/foo/bar
    rev: v1
    hooks: []
`)

	require.NoError(t, doc.SetRevision("https://github.com/foo/bar", "v2"))

	repos, err := doc.Repos()
	require.NoError(t, err)
	assert.Equal(t, "v2", repos[0].Rev)
	assert.Equal(t, "v1", repos[1].Rev)
}

func TestSetRevision_NumericLookingValueStaysString(t *testing.T) {
	doc := parse(t, "repos:\n  - repo: x\n    rev: 1.0\n    hooks: []\n")

	require.NoError(t, doc.SetRevision("x", "2.0"))

	assert.Contains(t, encode(t, doc), `rev: "2.0"`)
}

func TestSetRevision_UnknownRepo(t *testing.T) {
	doc := parse(t, "repos:\n  - repo: x\n    hooks: []\n")

	err := doc.SetRevision("y", "1")
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestSetAdditionalDependencies(t *testing.T) {
	doc := parse(t, `repos:
  - repo: https://github.com/foo/bar
    hooks:
      - id: hook1
`)

	require.NoError(t, doc.SetAdditionalDependencies("https://github.com/foo/bar", "hook1",
		[]string{"package1==1.0.0", "package2==2.0.0"}))

	assert.Equal(t, `repos:
  - repo: https://github.com/foo/bar
    hooks:
      - id: hook1
        additional_dependencies:
          - package1==1.0.0
          - package2==2.0.0
`, encode(t, doc))
}

func TestSetAdditionalDependencies_ReplacesAndKeepsFlowStyle(t *testing.T) {
	doc := parse(t, `repos:
  - repo: https://github.com/foo/bar
    hooks:
      - id: hook1
        additional_dependencies: [old==0.1]
`)

	require.NoError(t, doc.SetAdditionalDependencies("https://github.com/foo/bar", "hook1", []string{"new==1.0"}))

	assert.Contains(t, encode(t, doc), "additional_dependencies: [new==1.0]")
	assert.NotContains(t, encode(t, doc), "old==0.1")
}

func TestSetAdditionalDependencies_Empty(t *testing.T) {
	doc := parse(t, `repos:
  - repo: r
    hooks:
      - id: h
        additional_dependencies:
          - a
`)

	require.NoError(t, doc.SetAdditionalDependencies("r", "h", nil))

	assert.Contains(t, encode(t, doc), "additional_dependencies: []")
}

func TestSetAdditionalDependencies_UnknownHook(t *testing.T) {
	doc := parse(t, "repos:\n  - repo: r\n    hooks:\n      - id: h\n")

	err := doc.SetAdditionalDependencies("r", "other", []string{"a"})
	require.ErrorIs(t, err, ErrTargetNotFound)

	err = doc.SetAdditionalDependencies("missing", "h", []string{"a"})
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestEditsAreIdempotent(t *testing.T) {
	doc := parse(t, "repos:\n  - repo: r\n    rev: v1\n    hooks:\n      - id: h\n")

	apply := func() {
		require.NoError(t, doc.SetRevision("r", "v2"))
		require.NoError(t, doc.SetAdditionalDependencies("r", "h", []string{"a==1"}))
	}

	apply()
	once := encode(t, doc)
	apply()
	assert.Equal(t, once, encode(t, doc))
}

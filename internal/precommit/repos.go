package precommit

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/schaermu/sync-pre-commit-with-uv/internal/syncerr"
)

const (
	reposKey        = "repos"
	repoKey         = "repo"
	revKey          = "rev"
	hooksKey        = "hooks"
	hookIDKey       = "id"
	dependenciesKey = "additional_dependencies"
)

// Repo is one entry of the repos list.
type Repo struct {
	URL   string
	Rev   string
	Hooks []Hook
	// Node is the mapping node backing this entry.
	Node NodeID
}

// Hook is one hook declared by a Repo.
type Hook struct {
	ID   string
	Node NodeID
}

// Repos parses the repos list. Entries must declare "repo" and "hooks" and
// every hook an "id"; violations are reported as
// *syncerr.PreCommitConfigurationError.
func (d *Document) Repos() ([]Repo, error) {
	list, err := d.reposNode()
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []Repo{}, nil
	}

	repos := make([]Repo, 0, len(list.Content))
	for i, item := range list.Content {
		repo, err := d.parseRepo(i, resolve(item))
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// reposNode returns the repos sequence, or nil when the document has none.
func (d *Document) reposNode() (*yaml.Node, error) {
	top := d.topLevel()
	if top == nil {
		return nil, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, invalid("top level must be a mapping")
	}

	_, list := mappingValue(top, reposKey)
	if list == nil || isNull(list) {
		return nil, nil
	}
	if list.Kind != yaml.SequenceNode {
		return nil, invalid("repos must be a list")
	}
	return list, nil
}

func (d *Document) topLevel() *yaml.Node {
	if d.root.Kind == yaml.DocumentNode {
		if len(d.root.Content) == 0 {
			return nil
		}
		return resolve(d.root.Content[0])
	}
	if d.root.Kind == 0 {
		return nil
	}
	return resolve(d.root)
}

func (d *Document) parseRepo(index int, item *yaml.Node) (Repo, error) {
	if item.Kind != yaml.MappingNode {
		return Repo{}, invalid(fmt.Sprintf("repos[%d] must be a mapping", index))
	}

	url, err := requiredString(item, repoKey)
	if err != nil {
		return Repo{}, err
	}

	rev, err := optionalString(item, revKey)
	if err != nil {
		return Repo{}, err
	}

	_, hooksNode := mappingValue(item, hooksKey)
	if hooksNode == nil || isNull(hooksNode) {
		return Repo{}, missingKey(hooksKey)
	}
	if hooksNode.Kind != yaml.SequenceNode {
		return Repo{}, invalid(fmt.Sprintf("hooks of %s must be a list", url))
	}

	hooks := make([]Hook, 0, len(hooksNode.Content))
	for i, h := range hooksNode.Content {
		h = resolve(h)
		if h.Kind != yaml.MappingNode {
			return Repo{}, invalid(fmt.Sprintf("hooks[%d] of %s must be a mapping", i, url))
		}
		id, err := requiredString(h, hookIDKey)
		if err != nil {
			return Repo{}, err
		}
		hooks = append(hooks, Hook{ID: id, Node: d.idOf(h)})
	}

	return Repo{
		URL:   url,
		Rev:   rev,
		Hooks: hooks,
		Node:  d.idOf(item),
	}, nil
}

func requiredString(m *yaml.Node, key string) (string, error) {
	_, v := mappingValue(m, key)
	if v == nil || isNull(v) {
		return "", missingKey(key)
	}
	return scalarString(key, v)
}

func optionalString(m *yaml.Node, key string) (string, error) {
	_, v := mappingValue(m, key)
	if v == nil || isNull(v) {
		return "", nil
	}
	return scalarString(key, v)
}

func scalarString(key string, v *yaml.Node) (string, error) {
	if v.Kind != yaml.ScalarNode {
		return "", invalid(fmt.Sprintf("%s must be a string", key))
	}
	return v.Value, nil
}

// mappingValue returns the index of key's key node within m.Content and its
// value node, or -1 and nil when absent.
func mappingValue(m *yaml.Node, key string) (int, *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i, resolve(m.Content[i+1])
		}
	}
	return -1, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func missingKey(key string) error {
	return invalid(fmt.Sprintf("Missing required key: %s", key))
}

func invalid(reason string) error {
	return &syncerr.PreCommitConfigurationError{Reason: reason}
}

package precommit

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrTargetNotFound is returned by edits whose repo or hook is no longer in
// the document.
var ErrTargetNotFound = errors.New("edit target not found")

// SetRevision sets the rev of the first repo whose URL equals repoURL. A
// missing rev key is inserted right after the repo key.
func (d *Document) SetRevision(repoURL, rev string) error {
	repo, err := d.findRepo(repoURL)
	if err != nil {
		return err
	}

	if _, v := mappingValue(repo, revKey); v != nil {
		setString(v, rev)
		return nil
	}

	keyIdx, _ := mappingValue(repo, repoKey)
	pair := []*yaml.Node{stringNode(revKey), stringNode(rev)}
	repo.Content = insertAt(repo.Content, keyIdx+2, pair...)
	for _, n := range pair {
		d.register(n)
	}
	return nil
}

// SetAdditionalDependencies replaces the additional_dependencies of a hook
// with deps. The list keeps its flow or block style; a missing key is
// appended to the hook.
func (d *Document) SetAdditionalDependencies(repoURL, hookID string, deps []string) error {
	hook, err := d.findHook(repoURL, hookID)
	if err != nil {
		return err
	}

	list := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, dep := range deps {
		list.Content = append(list.Content, stringNode(dep))
	}

	keyIdx, old := mappingValue(hook, dependenciesKey)
	if old != nil {
		if old.Kind == yaml.SequenceNode {
			list.Style = old.Style & yaml.FlowStyle
		}
		hook.Content[keyIdx+1] = list
	} else {
		key := stringNode(dependenciesKey)
		hook.Content = append(hook.Content, key, list)
		d.register(key)
	}
	d.register(list)
	return nil
}

func (d *Document) findRepo(repoURL string) (*yaml.Node, error) {
	list, err := d.reposNode()
	if err != nil {
		return nil, err
	}
	if list != nil {
		for _, item := range list.Content {
			item = resolve(item)
			if item.Kind != yaml.MappingNode {
				continue
			}
			if _, v := mappingValue(item, repoKey); v != nil && v.Value == repoURL {
				return item, nil
			}
		}
	}
	return nil, fmt.Errorf("repo %s: %w", repoURL, ErrTargetNotFound)
}

func (d *Document) findHook(repoURL, hookID string) (*yaml.Node, error) {
	repo, err := d.findRepo(repoURL)
	if err != nil {
		return nil, err
	}
	if _, hooks := mappingValue(repo, hooksKey); hooks != nil {
		for _, h := range hooks.Content {
			h = resolve(h)
			if h.Kind != yaml.MappingNode {
				continue
			}
			if _, v := mappingValue(h, hookIDKey); v != nil && v.Value == hookID {
				return h, nil
			}
		}
	}
	return nil, fmt.Errorf("hook %s of repo %s: %w", hookID, repoURL, ErrTargetNotFound)
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// setString turns n into a string scalar holding value. Quoting is kept;
// block scalar styles are dropped.
func setString(n *yaml.Node, value string) {
	n.Kind = yaml.ScalarNode
	n.Tag = "!!str"
	n.Value = value
	n.Content = nil
	n.Style &= yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle
}

func insertAt(nodes []*yaml.Node, at int, items ...*yaml.Node) []*yaml.Node {
	if at > len(nodes) {
		at = len(nodes)
	}
	out := make([]*yaml.Node, 0, len(nodes)+len(items))
	out = append(out, nodes[:at]...)
	out = append(out, items...)
	return append(out, nodes[at:]...)
}

// Package precommit loads .pre-commit-config.yaml as an editable node tree
// and writes it back only when its content changed.
package precommit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// NodeID identifies a node of a Document. IDs are stable for the lifetime of
// the document; nodes added by edits get fresh IDs.
type NodeID int

// Document is a pre-commit configuration loaded for editing. Every node of
// the YAML tree is registered in an arena so parsed repos and hooks can refer
// to their backing nodes by NodeID.
type Document struct {
	root  *yaml.Node
	nodes []*yaml.Node
	ids   map[*yaml.Node]NodeID
}

// newDocument builds a Document around a decoded YAML tree.
func newDocument(root *yaml.Node) *Document {
	d := &Document{
		root: root,
		ids:  make(map[*yaml.Node]NodeID),
	}
	d.register(root)
	return d
}

// ParseDocument decodes YAML data into a Document.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse pre-commit config: %w", err)
	}
	return newDocument(&root), nil
}

// register adds n and its descendants to the arena.
func (d *Document) register(n *yaml.Node) {
	if n == nil {
		return
	}
	if _, ok := d.ids[n]; ok {
		return
	}
	d.ids[n] = NodeID(len(d.nodes))
	d.nodes = append(d.nodes, n)
	for _, child := range n.Content {
		d.register(child)
	}
}

// Node returns the node registered under id, or nil.
func (d *Document) Node(id NodeID) *yaml.Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return d.nodes[id]
}

func (d *Document) idOf(n *yaml.Node) NodeID {
	return d.ids[n]
}

// Bytes encodes the document with 2-space mapping indentation; block
// sequences are indented under their key with the dash offset by 2.
func (d *Document) Bytes() ([]byte, error) {
	if d.root.Kind == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("failed to encode pre-commit config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode pre-commit config: %w", err)
	}
	return buf.Bytes(), nil
}

// WithDocument loads the pre-commit configuration at path and hands it to fn
// for in-place edits. The file is rewritten only when fn succeeds and the tree
// differs structurally from what was read; comments and positions are not
// part of that comparison. It reports whether the file was written.
func WithDocument(path string, fn func(*Document) error) (bool, error) {
	data, err := readFile(path)
	if err != nil {
		return false, err
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return false, err
	}
	snapshot := cloneNode(doc.root, make(map[*yaml.Node]*yaml.Node))

	if err := fn(doc); err != nil {
		return false, err
	}

	if equalNodes(snapshot, doc.root) {
		return false, nil
	}

	out, err := doc.Bytes()
	if err != nil {
		return false, err
	}
	if err := writeFileAtomic(path, out); err != nil {
		return false, fmt.Errorf("failed to write pre-commit config: %w", err)
	}
	return true, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pre-commit config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read pre-commit config: %w", err)
	}
	return data, nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, keeping the original permissions.
func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".pre-commit-config-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}() // cleanup on error

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Chmod(info.Mode()); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// cloneNode deep-copies a node tree. Shared nodes (alias targets) stay shared
// in the copy.
func cloneNode(n *yaml.Node, seen map[*yaml.Node]*yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if c, ok := seen[n]; ok {
		return c
	}

	c := *n
	seen[n] = &c
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = cloneNode(child, seen)
		}
	}
	c.Alias = cloneNode(n.Alias, seen)
	return &c
}

// equalNodes compares two trees by kind, resolved tag, value and children.
func equalNodes(a, b *yaml.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Value != b.Value || len(a.Content) != len(b.Content) {
		return false
	}
	if a.Kind == yaml.ScalarNode && a.ShortTag() != b.ShortTag() {
		return false
	}
	// Alias values hold the anchor name.
	if a.Kind == yaml.AliasNode {
		return true
	}
	for i := range a.Content {
		if !equalNodes(a.Content[i], b.Content[i]) {
			return false
		}
	}
	return true
}

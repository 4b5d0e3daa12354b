// Package tree owns the authored descriptor hierarchy and every mutation on
// it: inserting palette items, moving and deleting subtrees, relabelling and
// merging definitions from other windows. Validity of labels is recomputed
// after each mutation so the submission gate never reads stale state.
package tree

import (
	"fmt"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/placement"
)

// RootID identifies the synthetic top-level scope.
const RootID = "root"

// Tree is a single-owner descriptor hierarchy. It is not safe for concurrent
// use.
type Tree struct {
	root   *descriptor.Descriptor
	issues []Issue
}

// Option configures a Tree.
type Option func(*Tree)

// WithDescriptors seeds the root scope.
func WithDescriptors(nodes ...*descriptor.Descriptor) Option {
	return func(t *Tree) {
		for _, node := range nodes {
			if node != nil {
				t.root.Children = append(t.root.Children, node)
			}
		}
	}
}

// New constructs an empty tree.
func New(options ...Option) *Tree {
	t := &Tree{
		root: &descriptor.Descriptor{ID: RootID, Kind: descriptor.KindObject},
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	t.recompute()
	return t
}

// Roots returns the top-level descriptors in order. The slice is a copy; the
// descriptors are not.
func (t *Tree) Roots() []*descriptor.Descriptor {
	return append([]*descriptor.Descriptor(nil), t.root.Children...)
}

// Len counts every authored descriptor in the tree.
func (t *Tree) Len() int {
	return t.root.Size() - 1
}

// Find returns the descriptor with id and its parent scope.
func (t *Tree) Find(id string) (node, parent *descriptor.Descriptor, ok bool) {
	if id == RootID {
		return t.root, nil, true
	}
	t.root.Walk(func(n, p *descriptor.Descriptor) bool {
		if n.ID == id {
			node, parent, ok = n, p, true
		}
		return !ok
	})
	return node, parent, ok
}

// Scope returns the container with id, or RootID's scope.
func (t *Tree) Scope(id string) (*descriptor.Descriptor, error) {
	if id == "" {
		id = RootID
	}
	node, _, ok := t.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !node.IsContainer() {
		return nil, fmt.Errorf("%w: %s", ErrNotContainer, id)
	}
	return node, nil
}

// InsertNew places a new descriptor in scope at p. Containers dropped
// directly into an array scope get a hidden placeholder label.
func (t *Tree) InsertNew(scopeID string, d *descriptor.Descriptor, p placement.Placement) error {
	if d == nil {
		return fmt.Errorf("tree: insert requires a descriptor")
	}
	scope, err := t.Scope(scopeID)
	if err != nil {
		return err
	}
	if _, _, exists := t.Find(d.ID); exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
	}
	if scope.Kind == descriptor.KindArray && d.IsContainer() {
		d.Label = descriptor.PlaceholderLabel(scope)
		d.Hidden = true
	}
	insertAt(scope, d, p)
	t.recompute()
	return nil
}

// Move relocates a node and its subtree from one scope to another. It fails
// with ErrInvalidMove, leaving the tree untouched, when the target is the
// node itself or one of its descendants, or when fromScopeID does not own the
// node. Containers and hidden members entering a different array take a fresh
// placeholder label.
func (t *Tree) Move(id, fromScopeID, toScopeID string, p placement.Placement) error {
	node, parent, ok := t.Find(id)
	if !ok || id == RootID {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if fromScopeID == "" {
		fromScopeID = RootID
	}
	if toScopeID == "" {
		toScopeID = RootID
	}
	if parent == nil || parent.ID != fromScopeID {
		return fmt.Errorf("%w: %s is not a child of %s", ErrInvalidMove, id, fromScopeID)
	}
	if node.Contains(toScopeID) {
		return fmt.Errorf("%w: %s cannot move into itself", ErrInvalidMove, id)
	}
	target, err := t.Scope(toScopeID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	if p.Closest == id {
		return nil
	}

	detach(parent, id)
	switch {
	case target.Kind != descriptor.KindArray:
		node.Hidden = false
	case target.ID != parent.ID && (node.IsContainer() || node.Hidden):
		node.Label = descriptor.PlaceholderLabel(target)
		node.Hidden = true
	}
	insertAt(target, node, p)
	t.recompute()
	return nil
}

// Delete removes a node and its subtree from scope and returns how many
// descriptors were removed. Unknown ids are a no-op.
func (t *Tree) Delete(id, scopeID string) int {
	if scopeID == "" {
		scopeID = RootID
	}
	node, parent, ok := t.Find(id)
	if !ok || parent == nil || parent.ID != scopeID {
		return 0
	}
	removed := node.Size()
	detach(parent, id)
	t.recompute()
	return removed
}

// SetLabel stores label on the descriptor. An invalid label is kept and
// reported through Issues; the returned error wraps descriptor.ErrInvalidLabel.
func (t *Tree) SetLabel(id, label string) error {
	node, _, ok := t.Find(id)
	if !ok || id == RootID {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	node.Label = label
	node.Hidden = false
	t.recompute()
	return descriptor.ValidateLabel(label)
}

// SetValue replaces a scalar or list value.
func (t *Tree) SetValue(id string, value any) error {
	node, _, ok := t.Find(id)
	if !ok || id == RootID {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return node.SetValue(value)
}

// Clear removes every descriptor.
func (t *Tree) Clear() {
	t.root.Children = nil
	t.recompute()
}

// InsertDefinitions converts defs and inserts them, in order, at p. Each
// following definition lands right after the previous one.
func (t *Tree) InsertDefinitions(scopeID string, defs []descriptor.Definition, p placement.Placement) error {
	nodes, err := descriptor.FromDefinitions(defs)
	if err != nil {
		return err
	}
	return t.InsertNodes(scopeID, nodes, p)
}

// InsertNodes inserts nodes in order at p, each following the previous one.
func (t *Tree) InsertNodes(scopeID string, nodes []*descriptor.Descriptor, p placement.Placement) error {
	for _, node := range nodes {
		if err := t.InsertNew(scopeID, node, p); err != nil {
			return err
		}
		p = placement.Placement{Closest: node.ID, Side: placement.After}
	}
	return nil
}

// MergeDefinitions folds defs into scope. A definition whose label matches an
// existing child replaces that child in place; the rest are appended.
func (t *Tree) MergeDefinitions(scopeID string, defs []descriptor.Definition) error {
	scope, err := t.Scope(scopeID)
	if err != nil {
		return err
	}
	nodes, err := descriptor.FromDefinitions(defs)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		replaced := false
		if node.Label != "" {
			for idx, child := range scope.Children {
				if child.Label == node.Label && !child.Hidden {
					scope.Children[idx] = node
					replaced = true
					break
				}
			}
		}
		if !replaced {
			if scope.Kind == descriptor.KindArray && node.IsContainer() {
				node.Label = descriptor.PlaceholderLabel(scope)
				node.Hidden = true
			}
			scope.Children = append(scope.Children, node)
		}
	}
	t.recompute()
	return nil
}

func insertAt(scope, d *descriptor.Descriptor, p placement.Placement) {
	idx := -1
	if !p.IsAppend() {
		idx = scope.IndexOf(p.Closest)
	}
	if idx < 0 {
		scope.Children = append(scope.Children, d)
		return
	}
	if p.Side != placement.Before {
		idx++
	}
	scope.Children = append(scope.Children, nil)
	copy(scope.Children[idx+1:], scope.Children[idx:])
	scope.Children[idx] = d
}

func detach(scope *descriptor.Descriptor, id string) {
	idx := scope.IndexOf(id)
	if idx < 0 {
		return
	}
	scope.Children = append(scope.Children[:idx], scope.Children[idx+1:]...)
}

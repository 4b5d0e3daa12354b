// Package session ties the tree, the selected template and the persistence
// sink into one authoring lifecycle: Empty, Populated and Submitting. It is
// single-owner; callers drive it from one goroutine.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"go.uber.org/zap"

	"github.com/goliatone/go-fmcompose/pkg/codec"
	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/document"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
	"github.com/goliatone/go-fmcompose/pkg/importer"
	"github.com/goliatone/go-fmcompose/pkg/placement"
	"github.com/goliatone/go-fmcompose/pkg/template"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

// Session is one authoring run.
type Session struct {
	tree             *tree.Tree
	importer         *importer.Importer
	sink             frontmatter.Sink
	logger           *zap.Logger
	codecOptions     []codec.Option
	resetAfterSubmit bool

	templates []template.Template
	selected  int
	state     State
}

// New constructs a Session.
func New(options ...Option) *Session {
	s := &Session{
		tree:     tree.New(),
		importer: importer.New(),
		logger:   zap.NewNop(),
		selected: -1,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.refresh()
	return s
}

// Tree exposes the authored tree for reading. Mutate through the session so
// the lifecycle state stays current.
func (s *Session) Tree() *tree.Tree {
	return s.tree
}

// State reports the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Ready is the submission gate: labels valid and unique per scope, and at
// least one descriptor or template field.
func (s *Session) Ready() bool {
	return s.tree.Ready(s.templateFields())
}

// CanClear reports whether the clear action has anything to remove.
func (s *Session) CanClear() bool {
	return s.tree.Len() > 0
}

func (s *Session) guard() error {
	if s.state == StateSubmitting {
		return ErrSubmitting
	}
	return nil
}

func (s *Session) refresh() {
	if s.state == StateSubmitting {
		return
	}
	if s.tree.Len() > 0 || s.selected >= 0 {
		s.state = StatePopulated
		return
	}
	s.state = StateEmpty
}

// Add creates a palette component in scope at p and returns it.
func (s *Session) Add(scopeID string, component descriptor.Component, p placement.Placement) (*descriptor.Descriptor, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	node, err := descriptor.FromComponent(component)
	if err != nil {
		return nil, err
	}
	if err := s.tree.InsertNew(scopeID, node, p); err != nil {
		return nil, err
	}
	s.refresh()
	s.logger.Debug("descriptor added",
		zap.String("component", string(component)),
		zap.String("scope", scopeID),
		zap.String("id", node.ID),
	)
	return node, nil
}

// Insert places an existing descriptor subtree in scope at p.
func (s *Session) Insert(scopeID string, node *descriptor.Descriptor, p placement.Placement) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.tree.InsertNew(scopeID, node, p); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// Move relocates a descriptor.
func (s *Session) Move(id, fromScopeID, toScopeID string, p placement.Placement) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.tree.Move(id, fromScopeID, toScopeID, p); err != nil {
		s.logger.Debug("move rejected", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a descriptor subtree and returns the number of removed
// descriptors.
func (s *Session) Delete(id, scopeID string) (int, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	removed := s.tree.Delete(id, scopeID)
	s.refresh()
	return removed, nil
}

// SetLabel relabels a descriptor. Invalid labels are stored and reported.
func (s *Session) SetLabel(id, label string) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.tree.SetLabel(id, label)
}

// SetValue updates a scalar or list value.
func (s *Session) SetValue(id string, value any) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.tree.SetValue(id, value)
}

// Clear empties the canvas. The template selection is kept.
func (s *Session) Clear() error {
	if err := s.guard(); err != nil {
		return err
	}
	s.tree.Clear()
	s.refresh()
	return nil
}

// MergeDefinitions folds definitions sent from a compose window into the
// root scope.
func (s *Session) MergeDefinitions(defs []descriptor.Definition) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.tree.MergeDefinitions(tree.RootID, defs); err != nil {
		return err
	}
	s.refresh()
	s.logger.Debug("definitions merged", zap.Int("count", len(defs)))
	return nil
}

// Compose builds the document that Submit would write: template values
// first, overridden by the authored tree.
func (s *Session) Compose() (*orderedmap.OrderedMap, error) {
	authored, err := codec.Flatten(s.tree.Roots(), s.codecOptions...)
	if err != nil {
		return nil, err
	}
	tpl, ok := s.Template()
	if !ok {
		return authored, nil
	}
	base, err := tpl.Document()
	if err != nil {
		return nil, fmt.Errorf("session: template %s: %w", tpl.Name, err)
	}
	return document.Merge(base, authored), nil
}

// Submit composes the document and writes it to the sink. It returns where
// the document was written.
func (s *Session) Submit(ctx context.Context) (string, error) {
	if err := s.guard(); err != nil {
		return "", err
	}
	if !s.Ready() {
		return "", fmt.Errorf("%w: %d issue(s)", ErrNotReady, len(s.tree.Issues()))
	}
	if s.sink == nil {
		return "", ErrNoSink
	}

	doc, err := s.Compose()
	if err != nil {
		s.logger.Error("compose failed", zap.Error(err))
		return "", err
	}

	s.state = StateSubmitting
	location, err := s.sink.Write(ctx, doc)
	s.state = StatePopulated
	if err != nil {
		s.logger.Error("submit failed", zap.Error(err))
		s.refresh()
		return "", err
	}

	s.logger.Info("document submitted",
		zap.String("location", location),
		zap.Int("keys", len(doc.Keys())),
	)
	if s.resetAfterSubmit {
		s.tree.Clear()
		s.selected = -1
	}
	s.refresh()
	return location, nil
}

func (s *Session) templateFields() int {
	if tpl, ok := s.Template(); ok {
		return tpl.Len()
	}
	return 0
}

// logJoined logs each error of a joined error separately.
func (s *Session) logJoined(msg string, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			s.logger.Warn(msg, zap.Error(e))
		}
		return
	}
	s.logger.Warn(msg, zap.Error(err))
}

package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/outline"
	"github.com/goliatone/go-fmcompose/pkg/placement"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

// pickNode lists the outline rows accepted by keep and returns the chosen
// descriptor, or nil when nothing qualifies.
func (c *Composer) pickNode(ctx context.Context, message string, keep func(*descriptor.Descriptor) bool) (*descriptor.Descriptor, error) {
	t := c.session.Tree()
	var (
		options []string
		ids     []string
	)
	for _, row := range outline.Rows(t) {
		node, _, ok := t.Find(row.ID)
		if !ok || (keep != nil && !keep(node)) {
			continue
		}
		options = append(options, fmt.Sprintf("%s (%s)", row.Path, row.Kind))
		ids = append(ids, row.ID)
	}
	if len(options) == 0 {
		return nil, c.info(ctx, "Nothing to "+strings.ToLower(message))
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: selectPageSize})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(ids) {
		return nil, nil
	}
	node, _, _ := t.Find(ids[idx])
	return node, nil
}

// pickScope asks for a container. Containers inside exclude are left out so
// a move cannot target the moved subtree.
func (c *Composer) pickScope(ctx context.Context, message, exclude string) (string, error) {
	t := c.session.Tree()
	options := []string{RootChoice}
	ids := []string{tree.RootID}

	var skip *descriptor.Descriptor
	if exclude != "" {
		skip, _, _ = t.Find(exclude)
	}
	for _, row := range outline.Rows(t) {
		if !row.Kind.IsContainer() || (skip != nil && skip.Contains(row.ID)) {
			continue
		}
		options = append(options, row.Path)
		ids = append(ids, row.ID)
	}
	if len(options) == 1 {
		return tree.RootID, nil
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: selectPageSize})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(ids) {
		return tree.RootID, nil
	}
	return ids[idx], nil
}

// pickPlacement asks where in scope the item goes. The siblings are laid out
// as rows of equal height and the chosen slot boundary is resolved like a
// drop at that offset.
func (c *Composer) pickPlacement(ctx context.Context, scopeID, moving string) (placement.Placement, error) {
	scope, err := c.session.Tree().Scope(scopeID)
	if err != nil {
		return placement.Append, err
	}
	var (
		ids     []string
		options []string
	)
	for _, child := range scope.Children {
		if child.ID == moving {
			continue
		}
		ids = append(ids, child.ID)
		options = append(options, beforePrefix+nodeLabel(child))
	}
	if len(ids) == 0 {
		return placement.Append, nil
	}
	options = append(options, EndChoice)

	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Position", Options: options, DefaultIndex: len(options) - 1})
	if err != nil {
		return placement.Append, err
	}
	if idx < 0 || idx >= len(options) {
		return placement.Append, nil
	}
	geometry := placement.Stacked(rowHeight, ids...)
	return placement.ResolveSiblings(ids, geometry, float64(idx)*rowHeight), nil
}

func (c *Composer) askLabel(ctx context.Context, node *descriptor.Descriptor) error {
	label, err := c.driver.Input(ctx, InputConfig{
		Message: "Label",
		Default: node.Label,
		Help:    descriptor.LabelMessage,
	})
	if err != nil {
		return err
	}
	if err := c.session.SetLabel(node.ID, strings.TrimSpace(label)); err != nil {
		return c.info(ctx, c.theme.ErrorPrefix+descriptor.LabelMessage)
	}
	return nil
}

func (c *Composer) askValue(ctx context.Context, node *descriptor.Descriptor) error {
	message := nodeLabel(node)
	switch {
	case node.Kind == descriptor.KindList:
		raw, err := c.driver.Input(ctx, InputConfig{
			Message: message,
			Default: strings.Join(node.Items(), listSeparator+" "),
			Help:    "Comma separated items",
		})
		if err != nil {
			return err
		}
		return c.session.SetValue(node.ID, splitItems(raw))
	case node.Widget == descriptor.WidgetCheckbox:
		checked, err := c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: node.Checked()})
		if err != nil {
			return err
		}
		return c.session.SetValue(node.ID, checked)
	case node.Widget == descriptor.WidgetTextarea || node.Widget == descriptor.WidgetMarkdown:
		text, err := c.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: node.Text()})
		if err != nil {
			return err
		}
		return c.session.SetValue(node.ID, text)
	default:
		text, err := c.driver.Input(ctx, InputConfig{Message: message, Default: node.Text(), Help: node.Placeholder})
		if err != nil {
			return err
		}
		return c.session.SetValue(node.ID, text)
	}
}

func nodeLabel(node *descriptor.Descriptor) string {
	switch {
	case node.Label == "":
		return "(" + string(node.Kind) + ")"
	case node.Hidden:
		return "[" + node.Label + "]"
	default:
		return node.Label
	}
}

func splitItems(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, listSeparator)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, strings.TrimSpace(part))
	}
	return items
}

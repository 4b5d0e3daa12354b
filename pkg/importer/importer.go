// Package importer turns an existing nested document into descriptors so it
// can be edited: objects become Object containers, arrays become Array
// containers whose members carry hidden placeholder labels, and leaves become
// scalars whose widget is chosen by a widgets.Registry.
package importer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/document"
	"github.com/goliatone/go-fmcompose/pkg/widgets"
)

// PlaceholderFormat is the hint shown in empty imported fields.
const PlaceholderFormat = "Add %s"

// Importer converts documents into descriptor trees.
type Importer struct {
	registry *widgets.Registry
}

// Option configures an Importer.
type Option func(*Importer)

// WithRegistry overrides the widget registry used for scalar values.
func WithRegistry(reg *widgets.Registry) Option {
	return func(im *Importer) {
		if reg != nil {
			im.registry = reg
		}
	}
}

// New constructs an Importer with the built-in widget matchers.
func New(options ...Option) *Importer {
	im := &Importer{registry: widgets.NewRegistry()}
	for _, opt := range options {
		if opt != nil {
			opt(im)
		}
	}
	return im
}

// Normalize converts every top-level entry of doc, in order.
func Normalize(doc *orderedmap.OrderedMap) ([]*descriptor.Descriptor, error) {
	return New().Normalize(doc)
}

// Normalize converts every top-level entry of doc, in order.
func (im *Importer) Normalize(doc *orderedmap.OrderedMap) ([]*descriptor.Descriptor, error) {
	if doc == nil {
		return nil, nil
	}
	normalized, _ := document.Normalize(doc).(*orderedmap.OrderedMap)
	out := make([]*descriptor.Descriptor, 0, len(normalized.Keys()))
	for _, key := range normalized.Keys() {
		value, _ := normalized.Get(key)
		node, err := im.Value(key, value)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// Value converts one labelled value into a descriptor subtree.
func (im *Importer) Value(label string, value any) (*descriptor.Descriptor, error) {
	switch typed := document.Normalize(value).(type) {
	case *orderedmap.OrderedMap:
		object := descriptor.NewObject(label)
		for _, key := range typed.Keys() {
			child, _ := typed.Get(key)
			node, err := im.Value(key, child)
			if err != nil {
				return nil, fmt.Errorf("importer: %s: %w", label, err)
			}
			object.Children = append(object.Children, node)
		}
		return object, nil
	case []any:
		return im.array(label, typed)
	case []string:
		items := make([]any, len(typed))
		for idx, item := range typed {
			items[idx] = item
		}
		return im.array(label, items)
	default:
		return im.scalar(label, typed), nil
	}
}

func (im *Importer) array(label string, items []any) (*descriptor.Descriptor, error) {
	array := descriptor.NewArray(label)
	for idx, item := range items {
		node, err := im.Value(descriptor.PlaceholderLabel(array), item)
		if err != nil {
			return nil, fmt.Errorf("importer: %s[%d]: %w", label, idx, err)
		}
		node.Hidden = true
		node.Placeholder = ""
		array.Children = append(array.Children, node)
	}
	return array, nil
}

func (im *Importer) scalar(label string, value any) *descriptor.Descriptor {
	widget := im.registry.ResolveOrText(value)
	var node *descriptor.Descriptor
	if widget == descriptor.WidgetCheckbox {
		node = descriptor.NewScalar(widget, label, value)
	} else {
		node = descriptor.NewScalar(widget, label, scalarText(value))
	}
	node.Placeholder = fmt.Sprintf(PlaceholderFormat, label)
	return node
}

func scalarText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

package descriptor

import (
	"fmt"

	"github.com/google/uuid"
)

// Descriptor is one editable field or container. Value holds a string for
// text-like widgets, a bool for checkboxes and a []string for lists; it is
// ignored for containers. Children is only meaningful for containers and its
// order is preserved by every operation.
type Descriptor struct {
	ID          string        `json:"id"`
	Kind        Kind          `json:"kind"`
	Widget      Widget        `json:"widget,omitempty"`
	Label       string        `json:"label"`
	Placeholder string        `json:"placeholder,omitempty"`
	Value       any           `json:"value,omitempty"`
	Children    []*Descriptor `json:"children,omitempty"`
	Hidden      bool          `json:"hidden,omitempty"`
	Closes      Kind          `json:"closes,omitempty"`
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// NewScalar creates a scalar descriptor. Checkbox scalars start unchecked and
// every other widget starts with an empty string unless value says otherwise.
func NewScalar(widget Widget, label string, value any) *Descriptor {
	if !widget.Valid() {
		widget = WidgetText
	}
	d := &Descriptor{
		ID:     NewID(),
		Kind:   KindScalar,
		Widget: widget,
		Label:  label,
	}
	d.Value = coerceScalar(widget, value)
	return d
}

// NewList creates a flat list of strings under one key.
func NewList(label string, items ...string) *Descriptor {
	return &Descriptor{
		ID:    NewID(),
		Kind:  KindList,
		Label: label,
		Value: append([]string{}, items...),
	}
}

// NewObject creates a named container.
func NewObject(label string, children ...*Descriptor) *Descriptor {
	return &Descriptor{
		ID:       NewID(),
		Kind:     KindObject,
		Label:    label,
		Children: append([]*Descriptor(nil), children...),
	}
}

// NewArray creates a named container whose members flatten into a sequence.
func NewArray(label string, children ...*Descriptor) *Descriptor {
	return &Descriptor{
		ID:       NewID(),
		Kind:     KindArray,
		Label:    label,
		Children: append([]*Descriptor(nil), children...),
	}
}

// NewEnd creates the end-of-scope marker used by the flatten codec. closes is
// KindObject, KindArray, or empty for the root scope.
func NewEnd(closes Kind) *Descriptor {
	return &Descriptor{
		ID:     NewID(),
		Kind:   KindEnd,
		Closes: closes,
	}
}

// FromComponent creates a fresh, empty descriptor for a palette component.
func FromComponent(c Component) (*Descriptor, error) {
	switch c {
	case ComponentText:
		return NewScalar(WidgetText, "", ""), nil
	case ComponentTextarea:
		return NewScalar(WidgetTextarea, "", ""), nil
	case ComponentMarkdown:
		return NewScalar(WidgetMarkdown, "", ""), nil
	case ComponentCheckbox:
		return NewScalar(WidgetCheckbox, "", false), nil
	case ComponentList:
		return NewList("", ""), nil
	case ComponentObject:
		return NewObject(""), nil
	case ComponentArray:
		return NewArray(""), nil
	default:
		return nil, fmt.Errorf("descriptor: unknown component %q", c)
	}
}

// IsContainer reports whether the descriptor owns children.
func (d *Descriptor) IsContainer() bool {
	return d != nil && d.Kind.IsContainer()
}

// RequiresLabel reports whether the descriptor's label takes part in
// submission readiness. Hidden placeholders and end markers do not.
func (d *Descriptor) RequiresLabel() bool {
	if d == nil || d.Hidden {
		return false
	}
	switch d.Kind {
	case KindScalar, KindList, KindObject, KindArray:
		return true
	default:
		return false
	}
}

// Text returns the string value of a text-like scalar.
func (d *Descriptor) Text() string {
	if d == nil {
		return ""
	}
	s, _ := d.Value.(string)
	return s
}

// Checked returns the checkbox state.
func (d *Descriptor) Checked() bool {
	if d == nil {
		return false
	}
	b, _ := d.Value.(bool)
	return b
}

// Items returns the list entries.
func (d *Descriptor) Items() []string {
	if d == nil {
		return nil
	}
	items, _ := d.Value.([]string)
	return items
}

// IndexOf returns the position of the direct child with the given id, or -1.
func (d *Descriptor) IndexOf(id string) int {
	if d == nil {
		return -1
	}
	for idx, child := range d.Children {
		if child.ID == id {
			return idx
		}
	}
	return -1
}

// Walk visits d and its descendants in document order. Returning false from
// fn stops the descent into that node's children.
func (d *Descriptor) Walk(fn func(node, parent *Descriptor) bool) {
	walk(d, nil, fn)
}

func walk(node, parent *Descriptor, fn func(node, parent *Descriptor) bool) {
	if node == nil {
		return
	}
	if !fn(node, parent) {
		return
	}
	for _, child := range node.Children {
		walk(child, node, fn)
	}
}

// Size counts d and all of its descendants.
func (d *Descriptor) Size() int {
	count := 0
	d.Walk(func(*Descriptor, *Descriptor) bool {
		count++
		return true
	})
	return count
}

// Contains reports whether id is d itself or one of its descendants.
func (d *Descriptor) Contains(id string) bool {
	found := false
	d.Walk(func(node, _ *Descriptor) bool {
		if node.ID == id {
			found = true
		}
		return !found
	})
	return found
}

// SetValue replaces the value after checking it matches the descriptor kind.
func (d *Descriptor) SetValue(value any) error {
	switch d.Kind {
	case KindScalar:
		if d.Widget == WidgetCheckbox {
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("descriptor: checkbox %q expects a bool, got %T", d.Label, value)
			}
			d.Value = b
			return nil
		}
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("descriptor: %s field %q expects a string, got %T", d.Widget, d.Label, value)
		}
		d.Value = s
		return nil
	case KindList:
		items, ok := value.([]string)
		if !ok {
			return fmt.Errorf("descriptor: list %q expects []string, got %T", d.Label, value)
		}
		d.Value = append([]string{}, items...)
		return nil
	default:
		return fmt.Errorf("descriptor: %s descriptors do not hold values", d.Kind)
	}
}

func coerceScalar(widget Widget, value any) any {
	if widget == WidgetCheckbox {
		switch v := value.(type) {
		case bool:
			return v
		case string:
			return v == "true"
		default:
			return false
		}
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

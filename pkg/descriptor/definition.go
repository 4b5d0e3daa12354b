package descriptor

import (
	"fmt"
	"strings"
)

// Definition is the serialisable field shape shared by schema files, imported
// documents and the compose window: `{label, type, widget, value,
// placeholder}`. Containers carry their members as a []Definition value.
type Definition struct {
	Label       string `json:"label"`
	Type        string `json:"type"`
	Widget      string `json:"widget,omitempty"`
	Value       any    `json:"value,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// Definition types understood by FromDefinition. TypeVariable is the compose
// window form, in which Widget names the scalar widget.
const (
	TypeText         = "text"
	TypeTextarea     = "textarea"
	TypeMarkdown     = "markdown"
	TypeMarkdownEdit = "markdown editor"
	TypeCheckbox     = "checkbox"
	TypeList         = "list"
	TypeSimpleList   = "simple list"
	TypeObject       = "object"
	TypeArray        = "array"
	TypeVariable     = "variable"
)

// FromDefinition builds a descriptor subtree. Members of an array definition
// that are hidden, or containers without a label, receive a placeholder label.
func FromDefinition(def Definition) (*Descriptor, error) {
	switch strings.ToLower(strings.TrimSpace(def.Type)) {
	case TypeText, "":
		return scalarFromDefinition(WidgetText, def), nil
	case TypeTextarea:
		return scalarFromDefinition(WidgetTextarea, def), nil
	case TypeMarkdown, TypeMarkdownEdit:
		return scalarFromDefinition(WidgetMarkdown, def), nil
	case TypeCheckbox:
		return scalarFromDefinition(WidgetCheckbox, def), nil
	case TypeVariable:
		widget := Widget(strings.TrimSpace(def.Widget))
		if widget == "markdown editor" {
			widget = WidgetMarkdown
		}
		if !widget.Valid() {
			return nil, fmt.Errorf("descriptor: definition %q has unknown widget %q", def.Label, def.Widget)
		}
		return scalarFromDefinition(widget, def), nil
	case TypeList, TypeSimpleList:
		items, err := stringItems(def.Value)
		if err != nil {
			return nil, fmt.Errorf("descriptor: list %q: %w", def.Label, err)
		}
		d := NewList(def.Label, items...)
		d.Placeholder = def.Placeholder
		d.Hidden = def.Hidden
		return d, nil
	case TypeObject, TypeArray:
		return containerFromDefinition(def)
	default:
		return nil, fmt.Errorf("descriptor: definition %q has unknown type %q", def.Label, def.Type)
	}
}

// FromDefinitions converts a sequence of definitions, stopping at the first
// error.
func FromDefinitions(defs []Definition) ([]*Descriptor, error) {
	out := make([]*Descriptor, 0, len(defs))
	for _, def := range defs {
		d, err := FromDefinition(def)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ToDefinition is the inverse of FromDefinition.
func ToDefinition(d *Descriptor) Definition {
	def := Definition{
		Label:       d.Label,
		Placeholder: d.Placeholder,
		Hidden:      d.Hidden,
	}
	switch d.Kind {
	case KindScalar:
		def.Type = string(d.Widget)
		def.Value = d.Value
	case KindList:
		def.Type = TypeSimpleList
		def.Value = append([]string{}, d.Items()...)
	case KindObject, KindArray:
		def.Type = string(d.Kind)
		members := make([]Definition, 0, len(d.Children))
		for _, child := range d.Children {
			members = append(members, ToDefinition(child))
		}
		def.Value = members
	}
	return def
}

func scalarFromDefinition(widget Widget, def Definition) *Descriptor {
	d := NewScalar(widget, def.Label, def.Value)
	d.Placeholder = def.Placeholder
	d.Hidden = def.Hidden
	return d
}

func containerFromDefinition(def Definition) (*Descriptor, error) {
	var parent *Descriptor
	if strings.EqualFold(def.Type, TypeArray) {
		parent = NewArray(def.Label)
	} else {
		parent = NewObject(def.Label)
	}
	parent.Hidden = def.Hidden

	members, err := memberDefinitions(def.Value)
	if err != nil {
		return nil, fmt.Errorf("descriptor: %s %q: %w", parent.Kind, def.Label, err)
	}
	for _, member := range members {
		child, err := FromDefinition(member)
		if err != nil {
			return nil, err
		}
		if parent.Kind == KindArray && (child.Hidden || (child.IsContainer() && child.Label == "")) {
			child.Label = PlaceholderLabel(parent)
			child.Hidden = true
		}
		parent.Children = append(parent.Children, child)
	}
	return parent, nil
}

func memberDefinitions(value any) ([]Definition, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []Definition:
		return v, nil
	case []any:
		out := make([]Definition, 0, len(v))
		for idx, raw := range v {
			switch member := raw.(type) {
			case Definition:
				out = append(out, member)
			case map[string]any:
				out = append(out, definitionFromMap(member))
			default:
				return nil, fmt.Errorf("member %d is %T, expected a definition", idx, raw)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("members must be a list, got %T", value)
	}
}

func definitionFromMap(raw map[string]any) Definition {
	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}
	hidden, _ := raw["hidden"].(bool)
	return Definition{
		Label:       str("label"),
		Type:        str("type"),
		Widget:      str("widget"),
		Value:       raw["value"],
		Placeholder: str("placeholder"),
		Hidden:      hidden,
	}
}

func stringItems(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				out = append(out, "")
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", value)
	}
}

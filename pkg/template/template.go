// Package template parses the JSON template files offered next to the canvas.
// A template is a flat list of fields; its values are submitted under dotted
// names and merged with the authored tree on submit.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/codec"
)

// ErrMalformedTemplate marks a template that could not be used. Other
// templates in the same listing still load.
var ErrMalformedTemplate = errors.New("template: malformed template")

// Template widgets.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetMarkdown = "markdown"
	WidgetCheckbox = "checkbox"
	WidgetSelect   = "select"
)

// Field is one template entry. For select fields Value holds the option list
// and Selected the current choice.
type Field struct {
	Label       string `json:"label"`
	Widget      string `json:"widget"`
	Value       any    `json:"value,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Selected    string `json:"-"`
}

// Template is a parsed template file. Label, when set, prefixes every field
// name so the values nest under one key.
type Template struct {
	Name   string  `json:"-"`
	Label  string  `json:"label,omitempty"`
	Values []Field `json:"values"`
}

type envelope struct {
	Label      string          `json:"label"`
	Values     *[]Field        `json:"values"`
	Properties json.RawMessage `json:"properties"`
}

// Parse decodes a template. Blobs carrying a JSON Schema `properties` object
// are converted with FromJSONSchema.
func Parse(name string, data []byte) (Template, error) {
	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return Template{}, fmt.Errorf("%w: %s: %v", ErrMalformedTemplate, name, err)
	}
	if env.Values == nil && len(env.Properties) > 0 {
		return FromJSONSchema(name, data)
	}
	if env.Values == nil {
		return Template{}, fmt.Errorf("%w: %s: missing values", ErrMalformedTemplate, name)
	}
	tpl := Template{Name: name, Label: strings.TrimSpace(env.Label), Values: *env.Values}
	if err := tpl.Validate(); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

// Validate checks every field has a name and a value shape its widget can
// hold, and that the field names unflatten into one document.
func (t Template) Validate() error {
	var errs []error
	for idx, field := range t.Values {
		if err := field.validate(); err != nil {
			errs = append(errs, fmt.Errorf("field %d: %w", idx, err))
		}
	}
	if len(errs) == 0 {
		if _, err := t.Document(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedTemplate, t.Name, errors.Join(errs...))
}

func (f Field) validate() error {
	if strings.TrimSpace(f.Label) == "" {
		return errors.New("label is required")
	}
	switch f.Widget {
	case WidgetText, WidgetTextarea, WidgetMarkdown:
		return nil
	case WidgetCheckbox:
		if _, ok := f.Value.(bool); f.Value != nil && !ok {
			return fmt.Errorf("checkbox %q expects a bool, got %T", f.Label, f.Value)
		}
		return nil
	case WidgetSelect:
		if _, ok := f.Value.([]any); !ok {
			return fmt.Errorf("select %q expects a list of options, got %T", f.Label, f.Value)
		}
		return nil
	default:
		return fmt.Errorf("field %q has unknown widget %q", f.Label, f.Widget)
	}
}

// Options lists the choices of a select field.
func (f Field) Options() []string {
	raw, _ := f.Value.([]any)
	out := make([]string, 0, len(raw))
	for _, option := range raw {
		out = append(out, fmt.Sprint(option))
	}
	return out
}

// Resolved returns the value submitted for the field: a bool for checkboxes,
// the chosen option for selects and a string otherwise.
func (f Field) Resolved() any {
	switch f.Widget {
	case WidgetCheckbox:
		b, _ := f.Value.(bool)
		return b
	case WidgetSelect:
		if f.Selected != "" {
			return f.Selected
		}
		if options := f.Options(); len(options) > 0 {
			return options[0]
		}
		return ""
	default:
		if f.Value == nil {
			return ""
		}
		if s, ok := f.Value.(string); ok {
			return s
		}
		return fmt.Sprint(f.Value)
	}
}

// FieldName returns the submitted name of f under the template label.
func (t Template) FieldName(f Field) string {
	if t.Label == "" {
		return f.Label
	}
	return t.Label + "." + f.Label
}

// Len reports the number of fields.
func (t Template) Len() int {
	return len(t.Values)
}

// Set updates the field submitted under name.
func (t *Template) Set(name string, value any) error {
	for idx := range t.Values {
		field := &t.Values[idx]
		if t.FieldName(*field) != name {
			continue
		}
		switch field.Widget {
		case WidgetCheckbox:
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("template: checkbox %q expects a bool, got %T", name, value)
			}
			field.Value = b
		case WidgetSelect:
			s := fmt.Sprint(value)
			for _, option := range field.Options() {
				if option == s {
					field.Selected = s
					return nil
				}
			}
			return fmt.Errorf("template: %q is not an option of %q", s, name)
		default:
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("template: field %q expects a string, got %T", name, value)
			}
			field.Value = s
		}
		return nil
	}
	return fmt.Errorf("template: unknown field %q", name)
}

// Pairs lists the dotted name and resolved value of every field in order.
func (t Template) Pairs() []codec.Pair {
	pairs := make([]codec.Pair, 0, len(t.Values))
	for _, field := range t.Values {
		pairs = append(pairs, codec.Pair{Name: t.FieldName(field), Value: field.Resolved()})
	}
	return pairs
}

// Document unflattens the template values into a nested document.
func (t Template) Document() (*orderedmap.OrderedMap, error) {
	return codec.Unflatten(t.Pairs())
}

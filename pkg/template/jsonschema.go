package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/document"
)

// FromJSONSchema flattens a JSON Schema object into a template. Nested object
// properties become dotted field labels in declaration order; booleans map to
// checkboxes, enums to selects and `format: textarea|markdown` to those
// widgets. Array properties have no flat form and are skipped.
func FromJSONSchema(name string, data []byte) (Template, error) {
	schema := &openapi3.Schema{}
	if err := schema.UnmarshalJSON(data); err != nil {
		return Template{}, fmt.Errorf("%w: %s: %v", ErrMalformedTemplate, name, err)
	}
	ordered, err := document.FromJSON(data)
	if err != nil {
		return Template{}, fmt.Errorf("%w: %s: %v", ErrMalformedTemplate, name, err)
	}
	if len(schema.Properties) == 0 {
		return Template{}, fmt.Errorf("%w: %s: schema has no properties", ErrMalformedTemplate, name)
	}

	tpl := Template{Name: name}
	if title := strings.TrimSpace(schema.Title); title != "" {
		tpl.Name = title
	}
	props, _ := document.Lookup(ordered, "properties")
	tpl.Values = schemaFields("", schema, props)
	if err := tpl.Validate(); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func schemaFields(prefix string, schema *openapi3.Schema, orderNode any) []Field {
	var fields []Field
	for _, key := range propertyOrder(schema, orderNode) {
		ref := schema.Properties[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		label := prefix + key

		switch schemaType(prop) {
		case openapi3.TypeObject:
			nested, _ := document.Lookup(asOrdered(orderNode), key, "properties")
			fields = append(fields, schemaFields(label+".", prop, nested)...)
			continue
		case openapi3.TypeArray:
			continue
		}
		fields = append(fields, schemaField(key, label, prop))
	}
	return fields
}

func schemaField(key, label string, prop *openapi3.Schema) Field {
	field := Field{
		Label:       label,
		Widget:      WidgetText,
		Placeholder: strings.TrimSpace(prop.Description),
	}
	if field.Placeholder == "" {
		field.Placeholder = "Add " + key
	}

	switch {
	case schemaType(prop) == openapi3.TypeBoolean:
		field.Widget = WidgetCheckbox
		b, _ := prop.Default.(bool)
		field.Value = b
	case len(prop.Enum) > 0:
		field.Widget = WidgetSelect
		options := make([]any, 0, len(prop.Enum))
		for _, option := range prop.Enum {
			options = append(options, fmt.Sprint(option))
		}
		field.Value = options
		if prop.Default != nil {
			field.Selected = fmt.Sprint(prop.Default)
		}
	default:
		switch strings.ToLower(strings.TrimSpace(prop.Format)) {
		case WidgetTextarea:
			field.Widget = WidgetTextarea
		case WidgetMarkdown:
			field.Widget = WidgetMarkdown
		}
		if prop.Default != nil {
			field.Value = fmt.Sprint(prop.Default)
		} else {
			field.Value = ""
		}
	}
	return field
}

// propertyOrder follows the declaration order recorded in orderNode and
// falls back to sorted keys for anything it does not list.
func propertyOrder(schema *openapi3.Schema, orderNode any) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var keys []string
	if ordered := asOrdered(orderNode); ordered != nil {
		for _, key := range ordered.Keys() {
			if _, ok := schema.Properties[key]; ok {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}
	var rest []string
	for key := range schema.Properties {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func asOrdered(v any) *orderedmap.OrderedMap {
	m, _ := v.(*orderedmap.OrderedMap)
	return m
}

func schemaType(schema *openapi3.Schema) string {
	if schema == nil {
		return ""
	}
	if schema.Type != nil {
		if values := schema.Type.Slice(); len(values) > 0 {
			return values[0]
		}
	}
	if len(schema.Properties) > 0 {
		return openapi3.TypeObject
	}
	return ""
}

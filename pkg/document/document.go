// Package document holds the nested, order-preserving data object produced by
// a composition. Objects are *orderedmap.OrderedMap, arrays are []any and
// leaves are strings, bools, []string or nil. Key order is authoring order and
// is carried through to the YAML output.
package document

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/iancoleman/orderedmap"
)

// New returns an empty ordered object.
func New() *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return m
}

// Normalize rewrites v so every object is an *orderedmap.OrderedMap. It
// accepts the value forms produced by orderedmap's JSON decoder (which
// stores nested objects by value) and plain map[string]any, whose keys are
// sorted because they carry no order.
func Normalize(v any) any {
	switch typed := v.(type) {
	case *orderedmap.OrderedMap:
		if typed == nil {
			return nil
		}
		out := New()
		for _, key := range typed.Keys() {
			value, _ := typed.Get(key)
			out.Set(key, Normalize(value))
		}
		return out
	case orderedmap.OrderedMap:
		return Normalize(&typed)
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := New()
		for _, key := range keys {
			out.Set(key, Normalize(typed[key]))
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = Normalize(item)
		}
		return out
	default:
		return v
	}
}

// Merge returns base overlaid with overlay. Keys present in both keep their
// position from base and take overlay's value; keys only in overlay are
// appended in overlay order. Neither input is modified.
func Merge(base, overlay *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	out := New()
	for _, src := range []*orderedmap.OrderedMap{base, overlay} {
		if src == nil {
			continue
		}
		for _, key := range src.Keys() {
			value, _ := src.Get(key)
			out.Set(key, value)
		}
	}
	return out
}

// Plain converts ordered objects into map[string]any, dropping order. It is
// meant for consumers that only need lookups, such as template contexts.
func Plain(v any) any {
	switch typed := v.(type) {
	case *orderedmap.OrderedMap:
		if typed == nil {
			return nil
		}
		out := make(map[string]any, len(typed.Keys()))
		for _, key := range typed.Keys() {
			value, _ := typed.Get(key)
			out[key] = Plain(value)
		}
		return out
	case orderedmap.OrderedMap:
		return Plain(&typed)
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = Plain(item)
		}
		return out
	default:
		return v
	}
}

// Entry is one key/value pair of an ordered object.
type Entry struct {
	Key   string
	Value any
}

// Entries lists the pairs of m in order, recursing into nested objects and
// arrays so the result can be compared or printed without the map internals.
func Entries(m *orderedmap.OrderedMap) []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, 0, len(m.Keys()))
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		out = append(out, Entry{Key: key, Value: entriesValue(value)})
	}
	return out
}

func entriesValue(v any) any {
	switch typed := v.(type) {
	case *orderedmap.OrderedMap:
		return Entries(typed)
	case orderedmap.OrderedMap:
		return Entries(&typed)
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = entriesValue(item)
		}
		return out
	default:
		return v
	}
}

// FromJSON decodes a JSON object keeping key order.
func FromJSON(data []byte) (*orderedmap.OrderedMap, error) {
	m := New()
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("document: decode json: %w", err)
	}
	normalized, _ := Normalize(m).(*orderedmap.OrderedMap)
	return normalized, nil
}

// Lookup resolves a dotted path through objects and arrays.
func Lookup(m *orderedmap.OrderedMap, path ...string) (any, bool) {
	var current any = m
	for _, segment := range path {
		switch node := current.(type) {
		case *orderedmap.OrderedMap:
			next, ok := node.Get(segment)
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

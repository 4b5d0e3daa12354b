package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/document"
)

// Pair is one flat form entry.
type Pair struct {
	Name  string
	Value any
}

// MaxIndex is the largest array index a dotted name may address.
const MaxIndex = 1 << 16

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// Unflatten builds a nested document from dotted names. Pairs are applied in
// order, so a later pair replaces the leaf written by an earlier one. Arrays
// grow to fit the largest index, up to MaxIndex; unfilled slots stay nil.
func Unflatten(pairs []Pair) (*orderedmap.OrderedMap, error) {
	root := document.New()
	for _, pair := range pairs {
		segments, err := splitPath(pair.Name)
		if err != nil {
			return nil, err
		}
		if _, err := assign(root, segments, pair.Value, pair.Name); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// UnflattenMap is Unflatten over the entries of an ordered map.
func UnflattenMap(flat *orderedmap.OrderedMap) (*orderedmap.OrderedMap, error) {
	if flat == nil {
		return document.New(), nil
	}
	pairs := make([]Pair, 0, len(flat.Keys()))
	for _, key := range flat.Keys() {
		value, _ := flat.Get(key)
		pairs = append(pairs, Pair{Name: key, Value: value})
	}
	return Unflatten(pairs)
}

func splitPath(name string) ([]string, error) {
	normalized := bracketIndex.ReplaceAllString(strings.TrimSpace(name), ".$1")
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidPath)
	}
	segments := strings.Split(normalized, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, name)
		}
	}
	return segments, nil
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func newContainer(next string) any {
	if isIndex(next) {
		return []any{}
	}
	return document.New()
}

// assign writes value at segments below node and returns node, which may be
// a new slice header when an array had to grow.
func assign(node any, segments []string, value any, name string) (any, error) {
	segment, rest := segments[0], segments[1:]
	switch current := node.(type) {
	case *orderedmap.OrderedMap:
		if len(rest) == 0 {
			current.Set(segment, value)
			return current, nil
		}
		child, _ := current.Get(segment)
		if child == nil {
			child = newContainer(rest[0])
		}
		updated, err := assign(child, rest, value, name)
		if err != nil {
			return nil, err
		}
		current.Set(segment, updated)
		return current, nil

	case []any:
		if !isIndex(segment) {
			return nil, fmt.Errorf("%w: %q uses key %q on an array", ErrPathConflict, name, segment)
		}
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("%w: %q index %q: %v", ErrInvalidPath, name, segment, err)
		}
		if idx > MaxIndex {
			return nil, fmt.Errorf("%w: %q index %d exceeds %d", ErrInvalidPath, name, idx, MaxIndex)
		}
		if len(current) <= idx {
			current = append(current, make([]any, idx+1-len(current))...)
		}
		if len(rest) == 0 {
			current[idx] = value
			return current, nil
		}
		child := current[idx]
		if child == nil {
			child = newContainer(rest[0])
		}
		updated, err := assign(child, rest, value, name)
		if err != nil {
			return nil, err
		}
		current[idx] = updated
		return current, nil

	default:
		return nil, fmt.Errorf("%w: %q descends through a %T at %q", ErrPathConflict, name, node, segment)
	}
}

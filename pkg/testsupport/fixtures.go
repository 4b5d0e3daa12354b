package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/document"
)

// OrderedMaps lets cmp compare ordered documents by their entries, so key
// order differences show up in diffs.
func OrderedMaps() cmp.Option {
	return cmp.Options{
		cmp.Transformer("OrderedEntries", func(m *orderedmap.OrderedMap) []document.Entry {
			return document.Entries(m)
		}),
		cmp.Transformer("OrderedValueEntries", func(m orderedmap.OrderedMap) []document.Entry {
			return document.Entries(&m)
		}),
	}
}

// DiffDocuments returns a cmp diff between two ordered documents.
func DiffDocuments(want, got *orderedmap.OrderedMap) string {
	return cmp.Diff(document.Entries(want), document.Entries(got))
}

// Ordered builds an ordered object from alternating key/value arguments.
// Testing helpers panic on malformed input to keep table setups concise.
func Ordered(pairs ...any) *orderedmap.OrderedMap {
	if len(pairs)%2 != 0 {
		panic("testsupport: Ordered expects key/value pairs")
	}
	m := document.New()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("testsupport: key %v is not a string", pairs[i]))
		}
		m.Set(key, pairs[i+1])
	}
	return m
}

// LoadFixture reads a fixture relative to the calling test's package.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := ReadFixture(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return data
}

// ReadFixture returns fixture bytes without requiring testing.T.
func ReadFixture(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fixture: %w", err)
	}
	return data, nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

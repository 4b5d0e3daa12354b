package codec

import (
	"fmt"

	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/document"
)

const rootScope = "main"

type entry struct {
	key    string
	value  any
	hidden bool
}

type frame struct {
	key     string
	kind    descriptor.Kind
	hidden  bool
	entries []entry
}

type flattener struct {
	sanitize ValueSanitizer
}

// Flatten converts an authored tree into the nested document.
func Flatten(roots []*descriptor.Descriptor, options ...Option) (*orderedmap.OrderedMap, error) {
	return FlattenSequence(Sequence(roots), options...)
}

// FlattenSequence consumes a token stream produced by Sequence, or by a
// front-end that renders the same shape. Nothing is returned unless every
// scope resolves.
func FlattenSequence(tokens []*descriptor.Descriptor, options ...Option) (*orderedmap.OrderedMap, error) {
	f := &flattener{}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f.run(tokens)
}

func (f *flattener) run(tokens []*descriptor.Descriptor) (*orderedmap.OrderedMap, error) {
	stack := []*frame{{key: rootScope}}
	var result *orderedmap.OrderedMap

	for pos, token := range tokens {
		if token == nil {
			continue
		}
		if len(stack) == 0 {
			return nil, fmt.Errorf("%w: token %d after the root scope closed", ErrUnresolvedScope, pos)
		}
		top := stack[len(stack)-1]

		switch token.Kind {
		case descriptor.KindObject, descriptor.KindArray:
			stack = append(stack, &frame{key: token.Label, kind: token.Kind, hidden: token.Hidden})

		case descriptor.KindEnd:
			if token.Closes != "" && token.Closes != top.kind {
				return nil, fmt.Errorf("%w: token %d closes %s but %q is %s", ErrUnresolvedScope, pos, token.Closes, top.key, kindName(top.kind))
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				result = buildObject(top.entries)
				continue
			}
			parent := stack[len(stack)-1]
			parent.entries = append(parent.entries, entry{key: top.key, value: build(top), hidden: top.hidden})

		case descriptor.KindScalar, descriptor.KindList:
			top.entries = append(top.entries, entry{key: token.Label, value: f.value(token), hidden: token.Hidden})

		default:
			return nil, fmt.Errorf("codec: token %d has unknown kind %q", pos, token.Kind)
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: %d scope(s) left open, innermost %q", ErrUnresolvedScope, len(stack), stack[len(stack)-1].key)
	}
	return result, nil
}

func (f *flattener) value(token *descriptor.Descriptor) any {
	if token.Kind == descriptor.KindList {
		items := token.Items()
		out := make([]any, len(items))
		for idx, item := range items {
			out[idx] = item
		}
		return out
	}
	if token.Widget == descriptor.WidgetCheckbox {
		return token.Checked()
	}
	text := token.Text()
	if f.sanitize != nil {
		text = f.sanitize(token.Widget, text)
	}
	return text
}

func build(fr *frame) any {
	if fr.kind == descriptor.KindArray {
		return buildArray(fr.entries)
	}
	return buildObject(fr.entries)
}

func buildObject(entries []entry) *orderedmap.OrderedMap {
	out := document.New()
	for _, e := range entries {
		out.Set(e.key, e.value)
	}
	return out
}

func buildArray(entries []entry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		switch {
		case composite(e.value), e.hidden:
			out = append(out, e.value)
		default:
			single := document.New()
			single.Set(e.key, e.value)
			out = append(out, single)
		}
	}
	return out
}

func composite(v any) bool {
	switch v.(type) {
	case *orderedmap.OrderedMap, []any:
		return true
	default:
		return false
	}
}

func kindName(k descriptor.Kind) string {
	if k == "" {
		return "the root"
	}
	return string(k)
}

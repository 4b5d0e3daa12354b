package widgets

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
)

// Matcher decides whether a widget should edit the supplied imported value.
type Matcher func(value any) bool

type rule struct {
	widget   descriptor.Widget
	priority int
	match    Matcher
	order    int
}

// Registry selects the scalar widget for an imported value based on
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for widget with the provided priority. Higher
// priority values take precedence. Unknown widgets are ignored.
func (r *Registry) Register(widget descriptor.Widget, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	widget = descriptor.Widget(strings.TrimSpace(string(widget)))
	if !widget.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		widget:   widget,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for value.
func (r *Registry) Resolve(value any) (descriptor.Widget, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(value) {
			return entry.widget, true
		}
	}
	return "", false
}

// ResolveOrText is Resolve falling back to the text widget.
func (r *Registry) ResolveOrText(value any) descriptor.Widget {
	if widget, ok := r.Resolve(value); ok {
		return widget
	}
	return descriptor.WidgetText
}

func (r *Registry) registerBuiltins() {
	r.Register(descriptor.WidgetCheckbox, 90, func(value any) bool {
		_, ok := value.(bool)
		return ok
	})

	r.Register(descriptor.WidgetTextarea, 80, func(value any) bool {
		s, ok := value.(string)
		return ok && strings.Contains(s, "\n")
	})

	r.Register(descriptor.WidgetText, 10, func(value any) bool {
		switch value.(type) {
		case nil, string, json.Number,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			return true
		default:
			return false
		}
	})
}

package descriptor_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
)

func TestValidLabel(t *testing.T) {
	cases := map[string]bool{
		"myLabel2":   true,
		"title":      true,
		"A1":         true,
		"My Label":   false,
		"":           false,
		"seo.title":  false,
		"snake_case": false,
		"café":       false,
	}
	for label, want := range cases {
		if got := descriptor.ValidLabel(label); got != want {
			t.Errorf("ValidLabel(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestValidateLabelWrapsSentinel(t *testing.T) {
	err := descriptor.ValidateLabel("My Label")
	if !errors.Is(err, descriptor.ErrInvalidLabel) {
		t.Fatalf("expected ErrInvalidLabel, got %v", err)
	}
	if err := descriptor.ValidateLabel("myLabel2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequiresLabel(t *testing.T) {
	hidden := descriptor.NewObject("item1")
	hidden.Hidden = true

	cases := []struct {
		name string
		d    *descriptor.Descriptor
		want bool
	}{
		{"scalar", descriptor.NewScalar(descriptor.WidgetText, "a", ""), true},
		{"list", descriptor.NewList("tags"), true},
		{"object", descriptor.NewObject("seo"), true},
		{"array", descriptor.NewArray("sections"), true},
		{"hidden placeholder", hidden, false},
		{"end marker", descriptor.NewEnd(descriptor.KindObject), false},
	}
	for _, tc := range cases {
		if got := tc.d.RequiresLabel(); got != tc.want {
			t.Errorf("%s: RequiresLabel = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFromComponentProducesFreshValues(t *testing.T) {
	for _, component := range descriptor.Palette() {
		d, err := descriptor.FromComponent(component)
		if err != nil {
			t.Fatalf("FromComponent(%q): %v", component, err)
		}
		if d.ID == "" {
			t.Fatalf("component %q has no id", component)
		}
		if d.Label != "" {
			t.Fatalf("component %q should start without a label", component)
		}
	}

	box, _ := descriptor.FromComponent(descriptor.ComponentCheckbox)
	if box.Checked() {
		t.Fatalf("checkbox should start unchecked")
	}
	md, _ := descriptor.FromComponent(descriptor.ComponentMarkdown)
	if md.Widget != descriptor.WidgetMarkdown {
		t.Fatalf("markdown component widget = %q", md.Widget)
	}
	if _, err := descriptor.FromComponent("slider"); err == nil {
		t.Fatalf("expected unknown component error")
	}
}

func TestSizeAndContains(t *testing.T) {
	leaf := descriptor.NewScalar(descriptor.WidgetText, "color", "#333")
	bg := descriptor.NewObject("background", leaf)
	root := descriptor.NewObject("section", bg, descriptor.NewScalar(descriptor.WidgetCheckbox, "inContainer", true))

	if got := root.Size(); got != 4 {
		t.Fatalf("Size = %d, want 4", got)
	}
	if !root.Contains(leaf.ID) {
		t.Fatalf("expected root to contain nested leaf")
	}
	if bg.Contains(root.ID) {
		t.Fatalf("child must not contain its parent")
	}
	if got := root.IndexOf(bg.ID); got != 0 {
		t.Fatalf("IndexOf = %d, want 0", got)
	}
}

func TestSetValueChecksKind(t *testing.T) {
	box := descriptor.NewScalar(descriptor.WidgetCheckbox, "draft", nil)
	if err := box.SetValue("yes"); err == nil {
		t.Fatalf("expected type error for checkbox")
	}
	if err := box.SetValue(true); err != nil || !box.Checked() {
		t.Fatalf("SetValue(true) = %v, checked=%v", err, box.Checked())
	}

	list := descriptor.NewList("tags")
	if err := list.SetValue([]string{"go", "yaml"}); err != nil {
		t.Fatalf("SetValue list: %v", err)
	}
	if diff := cmp.Diff([]string{"go", "yaml"}, list.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	if err := descriptor.NewObject("seo").SetValue("x"); err == nil {
		t.Fatalf("containers must reject values")
	}
}

func TestDefinitionRoundTrip(t *testing.T) {
	defs := []descriptor.Definition{
		{Label: "title", Type: "text", Value: "Hello", Placeholder: "Add title"},
		{Label: "draft", Type: "checkbox", Value: true},
		{Label: "tags", Type: "simple list", Value: []any{"a", "b"}},
		{Label: "sections", Type: "array", Value: []any{
			map[string]any{"label": "", "type": "object", "value": []any{
				map[string]any{"label": "container", "type": "text", "value": "article"},
			}},
		}},
	}

	nodes, err := descriptor.FromDefinitions(defs)
	if err != nil {
		t.Fatalf("FromDefinitions: %v", err)
	}
	if len(nodes) != 4 {
		t.Fatalf("expected 4 descriptors, got %d", len(nodes))
	}
	member := nodes[3].Children[0]
	if member.Label != "item1" || !member.Hidden {
		t.Fatalf("array member should get hidden placeholder, got %q hidden=%v", member.Label, member.Hidden)
	}

	back := descriptor.ToDefinition(nodes[2])
	want := descriptor.Definition{Label: "tags", Type: descriptor.TypeSimpleList, Value: []string{"a", "b"}}
	if diff := cmp.Diff(want, back); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestFromDefinitionVariableWidget(t *testing.T) {
	d, err := descriptor.FromDefinition(descriptor.Definition{Label: "summary", Type: "variable", Widget: "textarea", Value: "a\nb"})
	if err != nil {
		t.Fatalf("FromDefinition: %v", err)
	}
	if d.Widget != descriptor.WidgetTextarea || d.Text() != "a\nb" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if _, err := descriptor.FromDefinition(descriptor.Definition{Label: "x", Type: "variable", Widget: "slider"}); err == nil {
		t.Fatalf("expected unknown widget error")
	}
}

func TestPlaceholderLabelSkipsTakenNames(t *testing.T) {
	scope := descriptor.NewArray("sections")
	first := descriptor.NewObject("item1")
	second := descriptor.NewObject("item2")
	scope.Children = append(scope.Children, first, second)

	// item1 removed: count says item2, which is still taken.
	scope.Children = scope.Children[1:]
	if got := descriptor.PlaceholderLabel(scope); got != "item3" {
		t.Fatalf("PlaceholderLabel = %q, want item3", got)
	}
	if got := descriptor.PlaceholderLabel(descriptor.NewArray("empty")); got != "item1" {
		t.Fatalf("PlaceholderLabel on empty scope = %q", got)
	}
}

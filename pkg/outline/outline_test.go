package outline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/placement"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

func TestRows(t *testing.T) {
	sections := descriptor.NewArray("sections")
	tr := tree.New(tree.WithDescriptors(
		descriptor.NewScalar(descriptor.WidgetText, "title", "Hello"),
		descriptor.NewScalar(descriptor.WidgetCheckbox, "bad label", true),
		sections,
	))
	member := descriptor.NewObject("")
	if err := tr.InsertNew(sections.ID, member, placement.Append); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := tr.InsertNew(member.ID, descriptor.NewList("tags", "a", "b"), placement.Append); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got := Rows(tr)
	want := []Row{
		{Index: 1, Path: "title", Kind: descriptor.KindScalar, Widget: descriptor.WidgetText, Value: "Hello", Status: "ok"},
		{Index: 2, Path: "bad label", Kind: descriptor.KindScalar, Widget: descriptor.WidgetCheckbox, Value: "true", Status: descriptor.LabelMessage},
		{Index: 3, Path: "sections", Kind: descriptor.KindArray, Value: "1 item(s)", Status: "ok"},
		{Index: 4, Path: "sections.[item1]", Kind: descriptor.KindObject, Value: "1 item(s)", Status: "ok"},
		{Index: 5, Path: "sections.[item1].tags", Kind: descriptor.KindList, Value: "a, b", Status: "ok"},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Row{}, "ID")); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	if got := Render(tree.New()); got != "(empty)" {
		t.Fatalf("empty render = %q", got)
	}
	tr := tree.New(tree.WithDescriptors(descriptor.NewScalar(descriptor.WidgetTextarea, "summary", "line one\nline two")))
	out := Render(tr)
	for _, part := range []string{"summary", "textarea", "line one line two"} {
		if !strings.Contains(out, part) {
			t.Fatalf("render missing %q:\n%s", part, out)
		}
	}
}

package session_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-fmcompose/internal/loader"
	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/document"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
	"github.com/goliatone/go-fmcompose/pkg/placement"
	"github.com/goliatone/go-fmcompose/pkg/session"
	"github.com/goliatone/go-fmcompose/pkg/source"
	"github.com/goliatone/go-fmcompose/pkg/template"
	"github.com/goliatone/go-fmcompose/pkg/testsupport"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

type recordingSink struct {
	docs []*orderedmap.OrderedMap
	err  error
	hook func()
}

func (s *recordingSink) Write(_ context.Context, doc *orderedmap.OrderedMap) (string, error) {
	if s.hook != nil {
		s.hook()
	}
	if s.err != nil {
		return "", s.err
	}
	s.docs = append(s.docs, doc)
	return "memory://post", nil
}

func addText(t *testing.T, s *session.Session, scope, label, value string) *descriptor.Descriptor {
	t.Helper()
	node, err := s.Add(scope, descriptor.ComponentText, placement.Append)
	require.NoError(t, err)
	require.NoError(t, s.SetLabel(node.ID, label))
	require.NoError(t, s.SetValue(node.ID, value))
	return node
}

func TestLifecycleStates(t *testing.T) {
	s := session.New()
	assert.Equal(t, session.StateEmpty, s.State())
	assert.False(t, s.Ready())
	assert.False(t, s.CanClear())

	node := addText(t, s, tree.RootID, "title", "Hello")
	assert.Equal(t, session.StatePopulated, s.State())
	assert.True(t, s.Ready())
	assert.True(t, s.CanClear())

	removed, err := s.Delete(node.ID, tree.RootID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, session.StateEmpty, s.State())
	assert.Equal(t, "empty", s.State().String())
}

func TestInvalidLabelBlocksSubmit(t *testing.T) {
	sink := &recordingSink{}
	s := session.New(session.WithSink(sink))

	node, err := s.Add(tree.RootID, descriptor.ComponentText, placement.Append)
	require.NoError(t, err)
	err = s.SetLabel(node.ID, "My Label")
	assert.ErrorIs(t, err, descriptor.ErrInvalidLabel)
	assert.False(t, s.Ready())

	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, session.ErrNotReady)
	assert.Empty(t, sink.docs)
}

func TestSubmitComposesTemplateAndTree(t *testing.T) {
	ctx := testsupport.Context()
	core, logs := observer.New(zapcore.DebugLevel)
	sink := &recordingSink{}
	s := session.New(session.WithSink(sink), session.WithLogger(zap.New(core)))

	require.NoError(t, s.LoadTemplates(ctx, template.NewDirLister(nil), "../template/testdata/templates"))
	assert.NotZero(t, logs.FilterMessage("template skipped").Len(), "broken template should be logged")

	require.NoError(t, s.SelectTemplate("blog"))
	assert.Equal(t, session.StatePopulated, s.State())
	assert.True(t, s.Ready(), "template fields alone open the gate")
	require.NoError(t, s.SetTemplateValue("page.title", "Templated"))
	require.NoError(t, s.SetTemplateValue("page.layout", "landing"))

	addText(t, s, tree.RootID, "slug", "hello-world")

	location, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory://post", location)
	require.Len(t, sink.docs, 1)

	want := testsupport.Ordered(
		"page", testsupport.Ordered(
			"layout", "landing",
			"title", "Templated",
			"summary", "",
			"draft", true,
		),
		"slug", "hello-world",
	)
	if diff := testsupport.DiffDocuments(want, sink.docs[0]); diff != "" {
		t.Fatalf("submitted document mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, logs.FilterMessage("document submitted").Len())
}

func TestConflictingTemplateIsNotSelectable(t *testing.T) {
	s := session.New()
	require.NoError(t, s.LoadTemplates(context.Background(), template.NewDirLister(nil), "../template/testdata/templates"))

	err := s.SelectTemplate("conflict")
	assert.ErrorIs(t, err, session.ErrUnknownTemplate)
	assert.False(t, s.Ready(), "a template whose names cannot nest must not open the gate")
}

func TestTreeOverridesTemplateValues(t *testing.T) {
	s := session.New()
	require.NoError(t, s.LoadTemplates(context.Background(), template.NewDirLister(nil), "../template/testdata/templates"))
	require.NoError(t, s.SelectTemplate("seo"))

	seo, err := s.Add(tree.RootID, descriptor.ComponentObject, placement.Append)
	require.NoError(t, err)
	require.NoError(t, s.SetLabel(seo.ID, "seo"))
	addText(t, s, seo.ID, "title", "Mine")

	doc, err := s.Compose()
	require.NoError(t, err)
	got, ok := document.Lookup(doc, "seo", "title")
	require.True(t, ok)
	assert.Equal(t, "Mine", got)
	_, ok = document.Lookup(doc, "seo", "noindex")
	assert.False(t, ok, "overlay object replaces the template object")
}

func TestSubmitResetsWhenConfigured(t *testing.T) {
	sink := &recordingSink{}
	s := session.New(session.WithSink(sink), session.WithResetAfterSubmit(true))
	addText(t, s, tree.RootID, "title", "Hello")

	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.StateEmpty, s.State())
	assert.Zero(t, s.Tree().Len())
}

func TestMutationsRejectedWhileSubmitting(t *testing.T) {
	sink := &recordingSink{}
	s := session.New(session.WithSink(sink))
	node := addText(t, s, tree.RootID, "title", "Hello")

	var during []error
	sink.hook = func() {
		assert.Equal(t, session.StateSubmitting, s.State())
		_, addErr := s.Add(tree.RootID, descriptor.ComponentText, placement.Append)
		during = append(during,
			addErr,
			s.SetValue(node.ID, "changed"),
			s.Clear(),
		)
	}

	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	for _, e := range during {
		assert.ErrorIs(t, e, session.ErrSubmitting)
	}
	assert.Equal(t, "Hello", node.Text())
	assert.Equal(t, session.StatePopulated, s.State())
}

func TestSubmitSinkFailureKeepsState(t *testing.T) {
	boom := errors.New("disk full")
	s := session.New(session.WithSink(&recordingSink{err: boom}), session.WithResetAfterSubmit(true))
	addText(t, s, tree.RootID, "title", "Hello")

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, session.StatePopulated, s.State())
	assert.Equal(t, 1, s.Tree().Len())
}

func TestSubmitWithoutSink(t *testing.T) {
	s := session.New()
	addText(t, s, tree.RootID, "title", "Hello")
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSink)
}

func TestImportMarkdownAtPlacement(t *testing.T) {
	imported, err := testsupport.ReadFixture("testdata/imported.md")
	require.NoError(t, err)
	fields, err := testsupport.ReadFixture("testdata/fields.json")
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"imported.md": {Data: imported},
		"fields.json": {Data: fields},
		"notes.txt":   {Data: []byte("plain")},
	}
	ld := loader.New(source.NewLoaderOptions(source.WithFileSystem(fsys)))

	s := session.New()
	first := addText(t, s, tree.RootID, "first", "1")
	last := addText(t, s, tree.RootID, "last", "2")

	count, err := s.Import(context.Background(), ld, source.FromFS("imported.md"), tree.RootID,
		placement.Placement{Closest: first.ID, Side: placement.After})
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	var labels []string
	for _, node := range s.Tree().Roots() {
		labels = append(labels, node.Label)
	}
	assert.Equal(t, []string{"first", "title", "date", "weight", "sections", "tags", "last"}, labels)
	assert.Equal(t, last.ID, s.Tree().Roots()[6].ID)

	count, err = s.Import(context.Background(), ld, source.FromFS("fields.json"), tree.RootID, placement.Append)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.False(t, s.Ready(), "second title duplicates the imported one")

	_, err = s.Import(context.Background(), ld, source.FromFS("notes.txt"), tree.RootID, placement.Append)
	assert.ErrorIs(t, err, session.ErrUnsupportedImport)
}

func TestImportPayloadYAMLAndJSON(t *testing.T) {
	s := session.New()
	yamlDoc, err := source.NewPayload(source.FromFile("a.yaml"), []byte("seo:\n  title: Y\n"))
	require.NoError(t, err)
	_, err = s.ImportPayload(yamlDoc, tree.RootID, placement.Append)
	require.NoError(t, err)
	jsonDoc, err := source.NewPayload(source.FromFile("b.json"), []byte(`{"draft": true}`))
	require.NoError(t, err)
	_, err = s.ImportPayload(jsonDoc, tree.RootID, placement.Append)
	require.NoError(t, err)

	doc, err := s.Compose()
	require.NoError(t, err)
	want := testsupport.Ordered(
		"seo", testsupport.Ordered("title", "Y"),
		"draft", true,
	)
	if diff := testsupport.DiffDocuments(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeDefinitionsAndTemplateErrors(t *testing.T) {
	s := session.New()
	addText(t, s, tree.RootID, "title", "old")
	require.NoError(t, s.MergeDefinitions([]descriptor.Definition{
		{Label: "title", Type: descriptor.TypeText, Value: "new"},
		{Label: "draft", Type: descriptor.TypeCheckbox, Value: true},
	}))
	assert.Equal(t, 2, s.Tree().Len())
	assert.Equal(t, "new", s.Tree().Roots()[0].Text())

	assert.ErrorIs(t, s.SelectTemplate("missing"), session.ErrUnknownTemplate)
	assert.ErrorIs(t, s.SetTemplateValue("x", "y"), session.ErrUnknownTemplate)
}

func TestSubmitToFileSink(t *testing.T) {
	dir := t.TempDir()
	sink, err := frontmatter.NewFileSink(dir)
	require.NoError(t, err)
	s := session.New(session.WithSink(sink))
	addText(t, s, tree.RootID, "slug", "Hello World")

	location, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Contains(t, location, "hello-world.md")

	var buf bytes.Buffer
	s = session.New(session.WithSink(frontmatter.WriterSink{W: &buf}))
	addText(t, s, tree.RootID, "title", "Hi")
	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Hi\n---\n", buf.String())
}

package template

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fmcompose/internal/loader"
	"github.com/goliatone/go-fmcompose/pkg/codec"
	"github.com/goliatone/go-fmcompose/pkg/source"
	"github.com/goliatone/go-fmcompose/pkg/testsupport"
)

func TestLoadSkipsMalformedTemplates(t *testing.T) {
	templates, err := Load(context.Background(), NewDirLister(os.DirFS("testdata")), "templates")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedTemplate))

	var names []string
	for _, tpl := range templates {
		names = append(names, tpl.Name)
	}
	assert.Equal(t, []string{"Article", "blog", "seo"}, names)
	assert.ErrorIs(t, err, codec.ErrPathConflict, "conflicting field names mark the template malformed")
	assert.Contains(t, err.Error(), "conflict")
}

func TestDirListerFiltersAndSorts(t *testing.T) {
	files := fstest.MapFS{
		"tpl/b.json":     {Data: []byte(`{}`)},
		"tpl/a.JSON":     {Data: []byte(`{}`)},
		"tpl/.c.json":    {Data: []byte(`{}`)},
		"tpl/readme.md":  {Data: []byte(`x`)},
		"tpl/sub/d.json": {Data: []byte(`{}`)},
	}
	blobs, err := NewDirLister(files).ListTemplates(context.Background(), "tpl")
	require.NoError(t, err)

	var names []string
	for _, blob := range blobs {
		names = append(names, blob.Name)
	}
	assert.Equal(t, []string{"a", "b"}, names)

	_, err = NewDirLister(files).ListTemplates(context.Background(), "missing")
	assert.Error(t, err)
}

func TestPairsUseTemplateLabel(t *testing.T) {
	data := testsupport.LoadFixture(t, "testdata/templates/blog.json")
	tpl, err := Parse("blog", data)
	require.NoError(t, err)
	assert.Equal(t, 4, tpl.Len())

	want := []codec.Pair{
		{Name: "page.layout", Value: "post"},
		{Name: "page.title", Value: ""},
		{Name: "page.summary", Value: ""},
		{Name: "page.draft", Value: true},
	}
	if diff := cmp.Diff(want, tpl.Pairs()); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, tpl.Set("page.layout", "landing"))
	require.NoError(t, tpl.Set("page.title", "Hello"))
	assert.Error(t, tpl.Set("page.layout", "other"))
	assert.Error(t, tpl.Set("page.draft", "yes"))
	assert.Error(t, tpl.Set("layout", "post"))

	doc, err := tpl.Document()
	require.NoError(t, err)
	want2 := testsupport.Ordered("page", testsupport.Ordered(
		"layout", "landing",
		"title", "Hello",
		"summary", "",
		"draft", true,
	))
	if diff := cmp.Diff(want2, doc, testsupport.OrderedMaps()); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestDottedFieldLabelsNest(t *testing.T) {
	tpl, err := Parse("seo", testsupport.LoadFixture(t, "testdata/templates/seo.json"))
	require.NoError(t, err)
	doc, err := tpl.Document()
	require.NoError(t, err)
	want := testsupport.Ordered("seo", testsupport.Ordered("title", "Site", "noindex", false))
	if diff := cmp.Diff(want, doc, testsupport.OrderedMaps()); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"bad json":        `{"values": [`,
		"missing values":  `{"label": "x"}`,
		"missing label":   `{"values": [{"widget": "text"}]}`,
		"unknown widget":  `{"values": [{"label": "x", "widget": "slider"}]}`,
		"select not list": `{"values": [{"label": "x", "widget": "select", "value": "a"}]}`,
		"path conflict":   `{"values": [{"label": "seo", "widget": "text"}, {"label": "seo.title", "widget": "text"}]}`,
		"index too large": `{"values": [{"label": "items[1099511627776]", "widget": "text"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(name, []byte(raw))
			assert.ErrorIs(t, err, ErrMalformedTemplate)
		})
	}
}

func TestFromJSONSchema(t *testing.T) {
	tpl, err := Parse("article.schema", testsupport.LoadFixture(t, "testdata/templates/article.schema.json"))
	require.NoError(t, err)
	assert.Equal(t, "Article", tpl.Name)

	type row struct {
		Label, Widget string
		Value         any
	}
	var got []row
	for _, field := range tpl.Values {
		got = append(got, row{Label: field.Label, Widget: field.Widget, Value: field.Resolved()})
	}
	want := []row{
		{Label: "title", Widget: WidgetText, Value: ""},
		{Label: "body", Widget: WidgetMarkdown, Value: ""},
		{Label: "status", Widget: WidgetSelect, Value: "published"},
		{Label: "featured", Widget: WidgetCheckbox, Value: true},
		{Label: "seo.description", Widget: WidgetTextarea, Value: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Headline", tpl.Values[0].Placeholder)
}

func TestSourceLister(t *testing.T) {
	l := loader.New(source.NewLoaderOptions())
	lister := NewSourceLister(l, source.FromFile("testdata/templates/seo.json"))
	templates, err := Load(context.Background(), lister, "")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "seo", templates[0].Name)
}

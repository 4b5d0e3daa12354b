package frontmatter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fmcompose/pkg/testsupport"
)

func samplePost() *orderedmap.OrderedMap {
	return testsupport.Ordered(
		"title", "Hello",
		"draft", false,
		"tags", []any{"go", "yaml"},
		"seo", testsupport.Ordered("description", "Short"),
		"sections", []any{
			testsupport.Ordered("container", "article", "background", testsupport.Ordered("color", "#333")),
			testsupport.Ordered("note", "plain"),
		},
	)
}

func TestRenderMatchesGolden(t *testing.T) {
	got, err := Render(samplePost())
	require.NoError(t, err)

	golden := filepath.Join("testdata", "post.golden.md")
	if testsupport.WriteMaybeGolden(t, golden, got) {
		return
	}
	want := testsupport.MustReadGolden(t, golden)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	got, err := Render(testsupport.Ordered())
	require.NoError(t, err)
	assert.Equal(t, "---\n---\n", string(got))
}

func TestParseEmptyBlock(t *testing.T) {
	doc, body, err := Parse([]byte("---\n---\ntext"))
	require.NoError(t, err)
	assert.Empty(t, doc.Keys())
	assert.Equal(t, "text", string(body))
}

func TestParseRoundTrip(t *testing.T) {
	rendered, err := RenderWithBody(samplePost(), []byte("body\n"))
	require.NoError(t, err)

	doc, body, err := Parse(rendered)
	require.NoError(t, err)
	assert.Equal(t, "body\n", string(body))
	if diff := cmp.Diff(samplePost(), doc, testsupport.OrderedMaps()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImportedFile(t *testing.T) {
	doc, body, err := Parse(testsupport.LoadFixture(t, "testdata/imported.md"))
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "date", "weight", "sections", "tags"}, doc.Keys())
	date, _ := doc.Get("date")
	assert.Equal(t, "2024-03-01", date)
	weight, _ := doc.Get("weight")
	assert.Equal(t, 3, weight)
	assert.True(t, bytes.HasPrefix(body, []byte("# Body")))
}

func TestParseWithoutFrontMatter(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"no delimiter": "# just markdown\n",
		"never closed": "---\ntitle: x\n",
		"late opening": "\n---\ntitle: x\n---\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Parse([]byte(content))
			if !errors.Is(err, ErrNoFrontMatter) {
				t.Fatalf("expected ErrNoFrontMatter, got %v", err)
			}
		})
	}
}

func TestFileSinkNamesFromDocument(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir, WithBody([]byte("content\n")))
	require.NoError(t, err)

	path, err := sink.Write(context.Background(), testsupport.Ordered("slug", "My Post", "title", "x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "my-post.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\nslug: My Post\ntitle: x\n---\ncontent\n", string(data))

	path, err = sink.Write(context.Background(), testsupport.Ordered("title", "x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "index.md"), path)
}

func TestFileSinkCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir, WithNameTemplate(`{{ page.id }}.markdown`))
	require.NoError(t, err)

	path, err := sink.Write(context.Background(), testsupport.Ordered("page", testsupport.Ordered("id", "../../escape")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.markdown"), path)

	_, err = NewFileSink(dir, WithNameTemplate(`{{ broken`))
	assert.Error(t, err)
	_, err = NewFileSink("")
	assert.Error(t, err)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	where, err := WriterSink{W: &buf}.Write(context.Background(), testsupport.Ordered("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "stdout", where)
	assert.Equal(t, "---\na: b\n---\n", buf.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = WriterSink{W: &buf}.Write(ctx, testsupport.Ordered())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"My Post":          "my-post",
		"  Hello, World! ": "hello-world",
		"v1.2_notes":       "v1.2_notes",
		"":                 "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fmcompose/internal/config"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
	"github.com/goliatone/go-fmcompose/pkg/template"
)

func TestApplyFlagsOverridesConfig(t *testing.T) {
	cfg := config.Default()
	applyFlags(&cfg, flags{output: "content", name: "{{ title|slugify }}.md", reset: true, logLevel: "debug"})

	assert.Equal(t, "content", cfg.Output.Dir)
	assert.Equal(t, "{{ title|slugify }}.md", cfg.Output.NameTemplate)
	assert.True(t, cfg.Session.ResetAfterSubmit)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "templates", cfg.Templates.Dir)
}

func TestNewSinkAndLister(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()

	sink, err := newSink(cfg, false)
	require.NoError(t, err)
	assert.IsType(t, &frontmatter.FileSink{}, sink)

	sink, err = newSink(cfg, true)
	require.NoError(t, err)
	assert.IsType(t, frontmatter.WriterSink{}, sink)

	assert.IsType(t, &template.DirLister{}, newLister(cfg, nil))
	cfg.Templates.Sources = []string{"blog.json"}
	assert.IsType(t, &template.SourceLister{}, newLister(cfg, nil))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a.md", "b.json"}, splitList(" a.md, ,b.json "))
	assert.Nil(t, splitList(""))
}

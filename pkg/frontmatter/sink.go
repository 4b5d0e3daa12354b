package frontmatter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/document"
)

// DefaultNameTemplate names output files after the document slug.
const DefaultNameTemplate = `{{ slug|default:"index"|slugify }}.md`

// Sink persists a rendered document and reports where it went.
type Sink interface {
	Write(ctx context.Context, doc *orderedmap.OrderedMap) (string, error)
}

// FileSink writes each document to a file in Dir. The file name is a pongo2
// template evaluated against the document's values.
type FileSink struct {
	dir  string
	name *pongo2.Template
	body []byte
	perm os.FileMode
}

// FileSinkOption configures a FileSink.
type FileSinkOption func(*fileSinkConfig)

type fileSinkConfig struct {
	nameTemplate string
	body         []byte
	perm         os.FileMode
}

// WithNameTemplate overrides DefaultNameTemplate.
func WithNameTemplate(tpl string) FileSinkOption {
	return func(cfg *fileSinkConfig) {
		if strings.TrimSpace(tpl) != "" {
			cfg.nameTemplate = tpl
		}
	}
}

// WithBody appends body after the front matter block.
func WithBody(body []byte) FileSinkOption {
	return func(cfg *fileSinkConfig) {
		cfg.body = append([]byte(nil), body...)
	}
}

// WithFileMode sets the permissions of written files.
func WithFileMode(perm os.FileMode) FileSinkOption {
	return func(cfg *fileSinkConfig) {
		if perm != 0 {
			cfg.perm = perm
		}
	}
}

// NewFileSink compiles the name template and returns a sink writing to dir.
func NewFileSink(dir string, options ...FileSinkOption) (*FileSink, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("frontmatter: output directory is required")
	}
	cfg := fileSinkConfig{nameTemplate: DefaultNameTemplate, perm: 0o644}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	registerFilters()
	tpl, err := pongo2.FromString(cfg.nameTemplate)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: name template: %w", err)
	}
	return &FileSink{dir: dir, name: tpl, body: cfg.body, perm: cfg.perm}, nil
}

// Name renders the file name for doc.
func (s *FileSink) Name(doc *orderedmap.OrderedMap) (string, error) {
	values, _ := document.Plain(doc).(map[string]any)
	if values == nil {
		values = map[string]any{}
	}
	rendered, err := s.name.Execute(pongo2.Context(values))
	if err != nil {
		return "", fmt.Errorf("frontmatter: name template: %w", err)
	}
	name := filepath.Base(strings.TrimSpace(rendered))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("frontmatter: name template rendered an empty file name")
	}
	return name, nil
}

// Write implements Sink.
func (s *FileSink) Write(ctx context.Context, doc *orderedmap.OrderedMap) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := s.Name(doc)
	if err != nil {
		return "", err
	}
	payload, err := RenderWithBody(doc, s.body)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("frontmatter: mkdir %s: %w", s.dir, err)
	}
	target := filepath.Join(s.dir, name)
	if err := os.WriteFile(target, payload, s.perm); err != nil {
		return "", fmt.Errorf("frontmatter: write %s: %w", target, err)
	}
	return target, nil
}

// WriterSink renders documents to an io.Writer.
type WriterSink struct {
	W     io.Writer
	Label string
}

// Write implements Sink.
func (s WriterSink) Write(ctx context.Context, doc *orderedmap.OrderedMap) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.W == nil {
		return "", errors.New("frontmatter: writer is nil")
	}
	payload, err := Render(doc)
	if err != nil {
		return "", err
	}
	if _, err := s.W.Write(payload); err != nil {
		return "", fmt.Errorf("frontmatter: write: %w", err)
	}
	label := s.Label
	if label == "" {
		label = "stdout"
	}
	return label, nil
}

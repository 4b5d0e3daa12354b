// Package fmcompose composes YAML front matter documents from a tree of
// field descriptors. The root package re-exports the common entry points.
package fmcompose

import (
	"context"

	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/codec"
	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
	"github.com/goliatone/go-fmcompose/pkg/importer"
	"github.com/goliatone/go-fmcompose/pkg/placement"
	"github.com/goliatone/go-fmcompose/pkg/session"
	"github.com/goliatone/go-fmcompose/pkg/template"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

// Descriptor aliases descriptor.Descriptor for callers that only import the
// root package.
type Descriptor = descriptor.Descriptor

// Definition aliases the serialisable field shape.
type Definition = descriptor.Definition

// Placement aliases the insertion point returned by the resolver.
type Placement = placement.Placement

// Session aliases the authoring session.
type Session = session.Session

// RootID is the scope id of the top level.
const RootID = tree.RootID

// NewSession exposes the session constructor from the top-level module.
func NewSession(options ...session.Option) *session.Session {
	return session.New(options...)
}

// Compose flattens a descriptor forest into its nested document.
func Compose(roots []*descriptor.Descriptor, options ...codec.Option) (*orderedmap.OrderedMap, error) {
	return codec.Flatten(roots, options...)
}

// RenderFrontMatter flattens roots and frames the result as front matter.
func RenderFrontMatter(roots []*descriptor.Descriptor, options ...codec.Option) ([]byte, error) {
	doc, err := codec.Flatten(roots, options...)
	if err != nil {
		return nil, err
	}
	return frontmatter.Render(doc)
}

// ImportFrontMatter reads the front matter of a markdown file into
// descriptors, ready to be inserted into a tree.
func ImportFrontMatter(content []byte) ([]*descriptor.Descriptor, error) {
	doc, _, err := frontmatter.Parse(content)
	if err != nil {
		return nil, err
	}
	return importer.Normalize(doc)
}

// LoadTemplates lists templates in dir from the operating system. Templates
// that fail to parse are reported in the returned error next to the ones
// that loaded.
func LoadTemplates(ctx context.Context, dir string) ([]template.Template, error) {
	return template.Load(ctx, template.NewDirLister(nil), dir)
}

package session

import (
	"context"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"go.uber.org/zap"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/document"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
	"github.com/goliatone/go-fmcompose/pkg/importer"
	"github.com/goliatone/go-fmcompose/pkg/placement"
	"github.com/goliatone/go-fmcompose/pkg/source"
)

// Import loads src and inserts its fields into scope at p. Markdown files
// contribute their front matter, `.json` files are read as a schema when
// they carry `fields` and as a plain document otherwise, and YAML files as a
// plain document.
func (s *Session) Import(ctx context.Context, loader source.Loader, src source.Source, scopeID string, p placement.Placement) (int, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	payload, err := loader.Load(ctx, src)
	if err != nil {
		return 0, err
	}
	return s.ImportPayload(payload, scopeID, p)
}

// ImportPayload is Import for bytes already in hand.
func (s *Session) ImportPayload(payload source.Payload, scopeID string, p placement.Placement) (int, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	nodes, err := s.decode(payload)
	if err != nil {
		return 0, err
	}
	if err := s.tree.InsertNodes(scopeID, nodes, p); err != nil {
		return 0, err
	}
	s.refresh()
	s.logger.Info("document imported",
		zap.String("location", payload.Location()),
		zap.Int("fields", len(nodes)),
	)
	return len(nodes), nil
}

func (s *Session) decode(payload source.Payload) ([]*descriptor.Descriptor, error) {
	raw := payload.Raw()
	switch ext := source.Ext(payload.Source()); ext {
	case ".md", ".markdown":
		doc, _, err := frontmatter.Parse(raw)
		if err != nil {
			return nil, err
		}
		return s.importer.Normalize(doc)
	case ".json":
		if schema, ok := schemaPayload(raw); ok {
			return schema.Descriptors()
		}
		doc, err := document.FromJSON(raw)
		if err != nil {
			return nil, err
		}
		return s.importer.Normalize(doc)
	case ".yaml", ".yml":
		doc, err := document.FromYAML(raw)
		if err != nil {
			return nil, err
		}
		return s.importer.Normalize(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImport, ext)
	}
}

func schemaPayload(raw []byte) (importer.Schema, bool) {
	decoded, err := document.FromJSON(raw)
	if err != nil || !onlyFields(decoded) {
		return importer.Schema{}, false
	}
	schema, err := importer.ParseSchema(raw)
	if err != nil {
		return importer.Schema{}, false
	}
	return schema, true
}

func onlyFields(doc *orderedmap.OrderedMap) bool {
	keys := doc.Keys()
	if len(keys) != 1 || keys[0] != "fields" {
		return false
	}
	value, _ := doc.Get("fields")
	_, ok := value.([]any)
	return ok
}

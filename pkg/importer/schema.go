package importer

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/iancoleman/orderedmap"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
)

// Schema is the definition list saved alongside documents and accepted when a
// schema file is dropped onto the canvas.
type Schema struct {
	Fields []descriptor.Definition `json:"fields"`
}

// ToSchema converts doc into definitions, each with an `Add <key>`
// placeholder.
func ToSchema(doc *orderedmap.OrderedMap) (Schema, error) {
	return New().ToSchema(doc)
}

// ToSchema converts doc into definitions, each with an `Add <key>`
// placeholder.
func (im *Importer) ToSchema(doc *orderedmap.OrderedMap) (Schema, error) {
	nodes, err := im.Normalize(doc)
	if err != nil {
		return Schema{}, err
	}
	return Schema{Fields: ToDefinitions(nodes)}, nil
}

// ToDefinitions maps descriptors to their definition form.
func ToDefinitions(nodes []*descriptor.Descriptor) []descriptor.Definition {
	out := make([]descriptor.Definition, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, descriptor.ToDefinition(node))
	}
	return out
}

// ParseSchema decodes a schema file.
func ParseSchema(data []byte) (Schema, error) {
	var schema Schema
	if err := sonic.Unmarshal(data, &schema); err != nil {
		return Schema{}, fmt.Errorf("importer: decode schema: %w", err)
	}
	return schema, nil
}

// Descriptors builds descriptor trees for every field of the schema.
func (s Schema) Descriptors() ([]*descriptor.Descriptor, error) {
	return descriptor.FromDefinitions(s.Fields)
}

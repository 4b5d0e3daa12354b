package document

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"
)

// ToNode builds a YAML node tree for v keeping object key order.
func ToNode(v any) (*yaml.Node, error) {
	switch typed := v.(type) {
	case *orderedmap.OrderedMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if typed == nil {
			return node, nil
		}
		for _, key := range typed.Keys() {
			value, _ := typed.Get(key)
			child, err := ToNode(value)
			if err != nil {
				return nil, fmt.Errorf("document: key %q: %w", key, err)
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
		}
		return node, nil
	case orderedmap.OrderedMap:
		return ToNode(&typed)
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for idx, item := range typed {
			child, err := ToNode(item)
			if err != nil {
				return nil, fmt.Errorf("document: index %d: %w", idx, err)
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case []string:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			child := &yaml.Node{}
			if err := child.Encode(item); err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(typed); err != nil {
			return nil, fmt.Errorf("document: encode %T: %w", typed, err)
		}
		return node, nil
	}
}

// FromNode converts a decoded YAML node into document values. Mappings become
// ordered objects and timestamps stay as their source text.
func FromNode(node *yaml.Node) (any, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return FromNode(node.Content[0])
	case yaml.MappingNode:
		out := New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			value, err := FromNode(node.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("document: key %q: %w", key, err)
			}
			out.Set(key, value)
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := FromNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.AliasNode:
		return FromNode(node.Alias)
	case yaml.ScalarNode:
		if node.ShortTag() == "!!timestamp" {
			return node.Value, nil
		}
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("document: line %d: %w", node.Line, err)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("document: unsupported yaml node kind %d", node.Kind)
	}
}

// FromYAML decodes a YAML mapping keeping key order. Empty input yields an
// empty object.
func FromYAML(data []byte) (*orderedmap.OrderedMap, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("document: decode yaml: %w", err)
	}
	value, err := FromNode(&root)
	if err != nil {
		return nil, err
	}
	switch typed := value.(type) {
	case nil:
		return New(), nil
	case *orderedmap.OrderedMap:
		return typed, nil
	default:
		return nil, fmt.Errorf("document: expected a mapping, got %T", value)
	}
}

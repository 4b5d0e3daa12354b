package codec

import "github.com/goliatone/go-fmcompose/pkg/descriptor"

// Sequence lists roots in pre-order with an End marker after the last child
// of every scope. The final marker closes the root scope.
func Sequence(roots []*descriptor.Descriptor) []*descriptor.Descriptor {
	var tokens []*descriptor.Descriptor
	for _, node := range roots {
		tokens = appendTokens(tokens, node)
	}
	return append(tokens, descriptor.NewEnd(""))
}

func appendTokens(tokens []*descriptor.Descriptor, node *descriptor.Descriptor) []*descriptor.Descriptor {
	if node == nil || node.Kind == descriptor.KindEnd {
		return tokens
	}
	tokens = append(tokens, node)
	if !node.IsContainer() {
		return tokens
	}
	for _, child := range node.Children {
		tokens = appendTokens(tokens, child)
	}
	return append(tokens, descriptor.NewEnd(node.Kind))
}

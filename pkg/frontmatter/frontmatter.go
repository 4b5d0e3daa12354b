// Package frontmatter renders a document as a `---` framed YAML block and
// reads such blocks back from markdown files.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fmcompose/pkg/document"
)

// Delimiter frames the YAML block.
const Delimiter = "---"

// ErrNoFrontMatter is returned by Parse when content does not start with a
// front matter block.
var ErrNoFrontMatter = errors.New("frontmatter: no front matter block")

// Render writes doc as `---\n<yaml>---\n`, keeping key order.
func Render(doc *orderedmap.OrderedMap) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Delimiter + "\n")
	if doc != nil && len(doc.Keys()) > 0 {
		node, err := document.ToNode(doc)
		if err != nil {
			return nil, fmt.Errorf("frontmatter: %w", err)
		}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("frontmatter: encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("frontmatter: encode: %w", err)
		}
	}
	buf.WriteString(Delimiter + "\n")
	return buf.Bytes(), nil
}

// RenderWithBody renders doc followed by body.
func RenderWithBody(doc *orderedmap.OrderedMap, body []byte) ([]byte, error) {
	out, err := Render(doc)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return out, nil
	}
	return append(out, body...), nil
}

// Parse splits content into its front matter document and the remaining
// body. The opening delimiter must be the first line.
func Parse(content []byte) (*orderedmap.OrderedMap, []byte, error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	first, rest, ok := cutLine(content)
	if !ok && len(first) == 0 {
		return nil, nil, ErrNoFrontMatter
	}
	if string(bytes.TrimRight(first, " \t\r")) != Delimiter {
		return nil, nil, ErrNoFrontMatter
	}

	var block []byte
	remaining := rest
	for {
		line, next, more := cutLine(remaining)
		trimmed := string(bytes.TrimRight(line, " \t\r"))
		if trimmed == Delimiter || trimmed == "..." {
			doc, err := document.FromYAML(block)
			if err != nil {
				return nil, nil, fmt.Errorf("frontmatter: %w", err)
			}
			return doc, next, nil
		}
		if !more {
			return nil, nil, fmt.Errorf("%w: missing closing %q", ErrNoFrontMatter, Delimiter)
		}
		block = append(block, line...)
		block = append(block, '\n')
		remaining = next
	}
}

// cutLine returns the first line of b without its newline, the rest, and
// whether a newline was found.
func cutLine(b []byte) (line, rest []byte, found bool) {
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return b, nil, false
	}
	return b[:idx], b[idx+1:], true
}

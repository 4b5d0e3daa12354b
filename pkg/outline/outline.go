// Package outline prints a descriptor tree as a table, one row per
// descriptor, for terminal front-ends and debugging.
package outline

import (
	"fmt"
	"strings"

	"github.com/bndr/gotabulate"

	"github.com/goliatone/go-fmcompose/pkg/descriptor"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

// Headers are the column titles of Render.
var Headers = []string{"#", "path", "kind", "widget", "value", "status"}

const maxPreview = 40

// Row is one line of the outline.
type Row struct {
	Index  int
	ID     string
	Path   string
	Kind   descriptor.Kind
	Widget descriptor.Widget
	Value  string
	Status string
}

// Rows lists the tree in document order. Hidden placeholder labels show up
// in brackets in the path.
func Rows(t *tree.Tree) []Row {
	var rows []Row
	for _, root := range t.Roots() {
		rows = appendRows(rows, t, root, "")
	}
	return rows
}

func appendRows(rows []Row, t *tree.Tree, node *descriptor.Descriptor, prefix string) []Row {
	segment := node.Label
	if segment == "" {
		segment = "?"
	}
	if node.Hidden {
		segment = "[" + segment + "]"
	}
	path := segment
	if prefix != "" {
		path = prefix + "." + segment
	}

	status := "ok"
	if issue, ok := t.IssueFor(node.ID); ok {
		status = issue.Message
	}
	rows = append(rows, Row{
		Index:  len(rows) + 1,
		ID:     node.ID,
		Path:   path,
		Kind:   node.Kind,
		Widget: node.Widget,
		Value:  preview(node),
		Status: status,
	})
	for _, child := range node.Children {
		rows = appendRows(rows, t, child, path)
	}
	return rows
}

func preview(node *descriptor.Descriptor) string {
	var text string
	switch node.Kind {
	case descriptor.KindScalar:
		if node.Widget == descriptor.WidgetCheckbox {
			text = fmt.Sprint(node.Checked())
		} else {
			text = node.Text()
		}
	case descriptor.KindList:
		text = strings.Join(node.Items(), ", ")
	default:
		text = fmt.Sprintf("%d item(s)", len(node.Children))
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if len([]rune(text)) > maxPreview {
		text = string([]rune(text)[:maxPreview-1]) + "…"
	}
	return text
}

// Render formats the outline as a grid table.
func Render(t *tree.Tree) string {
	rows := Rows(t)
	if len(rows) == 0 {
		return "(empty)"
	}
	data := make([][]any, 0, len(rows))
	for _, row := range rows {
		data = append(data, []any{
			row.Index, row.Path, string(row.Kind), string(row.Widget), row.Value, row.Status,
		})
	}
	table := gotabulate.Create(data)
	table.SetHeaders(Headers)
	table.SetAlign("left")
	table.SetEmptyString("-")
	return table.Render("grid")
}

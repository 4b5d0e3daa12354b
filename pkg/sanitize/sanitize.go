// Package sanitize strips unsafe HTML from authored markdown before it is
// written into front matter.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fmcompose/pkg/codec"
	"github.com/goliatone/go-fmcompose/pkg/descriptor"
)

var (
	markdownPolicyOnce sync.Once
	markdownPolicy     *bluemonday.Policy
)

// bluemonday escapes text it keeps; these are restored so markdown syntax
// such as blockquotes and ampersands survive. `&lt;` stays escaped.
var restoreText = strings.NewReplacer(
	"&#34;", `"`,
	"&#39;", "'",
	"&gt;", ">",
	"&amp;", "&",
)

// Markdown removes disallowed HTML from raw. Values without markup are
// returned untouched.
func Markdown(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return raw
	}
	cleaned := markdownSanitizer().Sanitize(raw)
	return restoreText.Replace(cleaned)
}

// ForWidgets returns a codec.ValueSanitizer that cleans values of the given
// widgets. With no widgets it cleans markdown only.
func ForWidgets(widgets ...descriptor.Widget) codec.ValueSanitizer {
	if len(widgets) == 0 {
		widgets = []descriptor.Widget{descriptor.WidgetMarkdown}
	}
	allowed := make(map[descriptor.Widget]bool, len(widgets))
	for _, w := range widgets {
		allowed[w] = true
	}
	return func(widget descriptor.Widget, value string) string {
		if !allowed[widget] {
			return value
		}
		return Markdown(value)
	}
}

func markdownSanitizer() *bluemonday.Policy {
	markdownPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("details", "summary", "kbd", "mark")
		markdownPolicy = policy
	})
	return markdownPolicy
}

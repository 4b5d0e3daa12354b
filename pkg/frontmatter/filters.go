package frontmatter

import (
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"
)

var registerFiltersOnce sync.Once

// registerFilters adds the `slugify` filter used by file name templates.
func registerFilters() {
	registerFiltersOnce.Do(func() {
		if !pongo2.FilterExists("slugify") {
			_ = pongo2.RegisterFilter("slugify", filterSlugify)
		}
	})
}

func filterSlugify(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(Slugify(in.String())), nil
}

// Slugify lower-cases s and joins its letter and digit runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '.' || r == '_':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

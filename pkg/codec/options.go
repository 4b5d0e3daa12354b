package codec

import "github.com/goliatone/go-fmcompose/pkg/descriptor"

// ValueSanitizer post-processes string values before they enter the document.
type ValueSanitizer func(widget descriptor.Widget, value string) string

// Option configures Flatten and FlattenSequence.
type Option func(*flattener)

// WithValueSanitizer runs fn over every text-like scalar value.
func WithValueSanitizer(fn ValueSanitizer) Option {
	return func(f *flattener) {
		f.sanitize = fn
	}
}

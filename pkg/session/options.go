package session

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-fmcompose/pkg/codec"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
	"github.com/goliatone/go-fmcompose/pkg/importer"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSink sets where Submit writes the composed document.
func WithSink(sink frontmatter.Sink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// WithImporter overrides the importer used for dropped documents.
func WithImporter(im *importer.Importer) Option {
	return func(s *Session) {
		if im != nil {
			s.importer = im
		}
	}
}

// WithTree seeds the session with an existing tree.
func WithTree(t *tree.Tree) Option {
	return func(s *Session) {
		if t != nil {
			s.tree = t
		}
	}
}

// WithCodecOptions passes options to the flatten codec on every compose.
func WithCodecOptions(options ...codec.Option) Option {
	return func(s *Session) {
		s.codecOptions = append(s.codecOptions, options...)
	}
}

// WithResetAfterSubmit clears the canvas and template selection after a
// successful submit.
func WithResetAfterSubmit(reset bool) Option {
	return func(s *Session) {
		s.resetAfterSubmit = reset
	}
}

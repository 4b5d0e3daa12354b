package source

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches templates and documents from different sources (filesystem,
// fs.FS, HTTP). The implementation lives under internal/loader.
type Loader interface {
	Load(ctx context.Context, src Source) (Payload, error)
}

// ErrUnsupportedExtension is returned by loaders restricted to a set of
// extensions when a source falls outside it.
var ErrUnsupportedExtension = errors.New("source: unsupported extension")

// DocumentExtensions are the extensions of importable documents and templates.
var DocumentExtensions = []string{".md", ".markdown", ".json", ".yaml", ".yml"}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading fs sources from an abstract filesystem.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour. Nil means
	// HTTP sources are disabled unless AllowHTTPFallback is true.
	HTTPClient *http.Client

	// AllowHTTPFallback enables a default HTTP client when none is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// Extensions restricts which sources are loaded. Empty accepts all.
	Extensions []string
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote templates.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithExtensions limits loading to sources whose extension is listed.
func WithExtensions(exts ...string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Extensions = append(opts.Extensions, exts...)
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

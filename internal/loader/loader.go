package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/goliatone/go-fmcompose/pkg/source"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads templates and documents from disk, an fs.FS or HTTP. Payloads
// are checked against their extension before they are handed back.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
	exts    []string
}

var _ source.Loader = (*Loader)(nil)

// New builds a Loader. HTTP sources are refused unless a client was injected
// or the fallback client was enabled.
func New(options source.LoaderOptions) *Loader {
	l := &Loader{
		fs:      options.FileSystem,
		timeout: options.RequestTimeout,
	}
	if client := options.HTTPClient; client != nil {
		clone := *client
		if l.timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = l.timeout
		}
		l.http = &clone
	} else if options.AllowHTTPFallback {
		l.http = &http.Client{Timeout: l.timeout}
	}
	for _, ext := range options.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext != "" {
			l.exts = append(l.exts, ext)
		}
	}
	return l
}

// Load fetches the payload behind src.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Payload, error) {
	if src == nil {
		return source.Payload{}, errors.New("loader: source is nil")
	}
	ext := source.Ext(src)
	if len(l.exts) > 0 && !slices.Contains(l.exts, ext) {
		return source.Payload{}, fmt.Errorf("%w: %q (%s)", source.ErrUnsupportedExtension, ext, src.Location())
	}

	data, err := l.fetch(ctx, src)
	if err != nil {
		return source.Payload{}, fmt.Errorf("loader: %s %s: %w", src.Kind(), src.Location(), err)
	}
	data, err = checkContent(ext, data)
	if err != nil {
		return source.Payload{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}
	return source.NewPayload(src, data)
}

func (l *Loader) fetch(ctx context.Context, src source.Source) ([]byte, error) {
	switch src.Kind() {
	case source.KindFile:
		return loadFile(ctx, src.Location())
	case source.KindFS:
		return loadFromFS(ctx, l.fs, src.Location())
	case source.KindURL:
		if l.http == nil {
			return nil, errors.New("http support disabled")
		}
		return loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", src.Kind())
	}
}

// checkContent drops a leading byte order mark and rejects .json payloads
// that are not valid JSON.
func checkContent(ext string, data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if ext == ".json" && len(bytes.TrimSpace(data)) > 0 && !sonic.Valid(data) {
		return nil, errors.New("invalid json")
	}
	return data, nil
}

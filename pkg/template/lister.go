package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-fmcompose/pkg/source"
)

// Blob is one raw template with the name it is listed under.
type Blob struct {
	Name string
	Data []byte
}

// Lister enumerates raw templates.
type Lister interface {
	ListTemplates(ctx context.Context, dir string) ([]Blob, error)
}

// DirLister lists `*.json` files of a directory, skipping hidden files, in
// name order. Without a filesystem it reads the operating system directly.
type DirLister struct {
	fsys fs.FS
}

// NewDirLister returns a DirLister over fsys.
func NewDirLister(fsys fs.FS) *DirLister {
	return &DirLister{fsys: fsys}
}

// ListTemplates implements Lister.
func (l *DirLister) ListTemplates(ctx context.Context, dir string) ([]Blob, error) {
	if dir == "" {
		dir = "."
	}
	var (
		entries []fs.DirEntry
		err     error
	)
	if l != nil && l.fsys != nil {
		entries, err = fs.ReadDir(l.fsys, dir)
	} else {
		entries, err = os.ReadDir(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("template: list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(path.Ext(name), ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	blobs := make([]Blob, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := l.read(dir, name)
		if err != nil {
			return nil, fmt.Errorf("template: read %s: %w", name, err)
		}
		blobs = append(blobs, Blob{Name: strings.TrimSuffix(name, path.Ext(name)), Data: data})
	}
	return blobs, nil
}

func (l *DirLister) read(dir, name string) ([]byte, error) {
	if l != nil && l.fsys != nil {
		return fs.ReadFile(l.fsys, path.Join(dir, name))
	}
	return os.ReadFile(filepath.Join(dir, name))
}

// SourceLister lists a fixed set of sources through a source.Loader. The dir
// argument is ignored.
type SourceLister struct {
	loader  source.Loader
	sources []source.Source
}

// NewSourceLister returns a lister over sources.
func NewSourceLister(loader source.Loader, sources ...source.Source) *SourceLister {
	return &SourceLister{loader: loader, sources: sources}
}

// ListTemplates implements Lister.
func (l *SourceLister) ListTemplates(ctx context.Context, _ string) ([]Blob, error) {
	if l == nil || l.loader == nil {
		return nil, errors.New("template: source lister has no loader")
	}
	blobs := make([]Blob, 0, len(l.sources))
	for _, src := range l.sources {
		payload, err := l.loader.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, Blob{Name: payload.Name(), Data: payload.Raw()})
	}
	return blobs, nil
}

// Load lists and parses templates. Malformed templates are skipped and
// reported together in the returned error, which wraps ErrMalformedTemplate;
// the templates that did parse are returned alongside it.
func Load(ctx context.Context, lister Lister, dir string) ([]Template, error) {
	if lister == nil {
		return nil, errors.New("template: lister is required")
	}
	blobs, err := lister.ListTemplates(ctx, dir)
	if err != nil {
		return nil, err
	}
	templates := make([]Template, 0, len(blobs))
	var errs []error
	for _, blob := range blobs {
		tpl, err := Parse(blob.Name, blob.Data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		templates = append(templates, tpl)
	}
	return templates, errors.Join(errs...)
}

package source

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source identifies where a template or document originated so loaders can
// operate on files, fs.FS entries, or URLs without leaking implementation
// details.
type Source interface {
	Kind() Kind
	Location() string
}

// Kind enumerates the loader modalities.
type Kind string

const (
	KindFile Kind = "file"
	KindFS   Kind = "fs"
	KindURL  Kind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() Kind       { return KindFile }

// FromFile returns a Source pointing to a file path.
func FromFile(p string) Source {
	return fileSource{path: filepath.Clean(p)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() Kind       { return KindFS }

// FromFS returns a Source identifying a resource inside an fs.FS.
func FromFS(name string) Source {
	return fsSource{name: path.Clean(name)}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() Kind       { return KindURL }

// Parse picks a Source for a location string: http(s) URLs become URL
// sources, everything else a file.
func Parse(location string) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if _, err := url.ParseRequestURI(location); err == nil {
			return urlSource{raw: location}
		}
	}
	return FromFile(location)
}

// Ext returns the lower-cased extension of the source location.
func Ext(src Source) string {
	if src == nil {
		return ""
	}
	loc := src.Location()
	if src.Kind() == KindURL {
		if u, err := url.Parse(loc); err == nil {
			loc = u.Path
		}
	}
	return strings.ToLower(path.Ext(filepath.ToSlash(loc)))
}

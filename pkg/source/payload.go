package source

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// Payload wraps raw bytes and their origin.
type Payload struct {
	source Source
	raw    []byte
}

// NewPayload constructs a Payload while validating the inputs.
func NewPayload(src Source, raw []byte) (Payload, error) {
	if src == nil {
		return Payload{}, errors.New("source: source is required")
	}
	if len(raw) == 0 {
		return Payload{}, errors.New("source: payload is empty")
	}

	clone := append([]byte(nil), raw...)
	return Payload{source: src, raw: clone}, nil
}

// Source returns the origin metadata.
func (p Payload) Source() Source {
	return p.source
}

// Raw returns a copy of the payload.
func (p Payload) Raw() []byte {
	return append([]byte(nil), p.raw...)
}

// Location returns the string identifier for the origin.
func (p Payload) Location() string {
	if p.source == nil {
		return ""
	}
	return p.source.Location()
}

// Name returns the base name of the origin without its extension.
func (p Payload) Name() string {
	loc := filepath.ToSlash(p.Location())
	base := path.Base(loc)
	return strings.TrimSuffix(base, path.Ext(base))
}

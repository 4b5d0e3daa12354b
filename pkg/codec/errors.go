package codec

import "errors"

var (
	// ErrUnresolvedScope is returned when the token stream closes a scope that
	// was never opened, continues after the root scope closed, or ends with
	// scopes still open.
	ErrUnresolvedScope = errors.New("codec: unresolved scope")
	// ErrPathConflict is returned when a dotted name needs to descend through
	// a scalar, or addresses an array with a non-numeric segment.
	ErrPathConflict = errors.New("codec: path conflict")
	// ErrInvalidPath is returned for empty names or empty segments.
	ErrInvalidPath = errors.New("codec: invalid path")
)

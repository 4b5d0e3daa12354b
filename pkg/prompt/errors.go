package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoLoader is returned by the import action when the composer has no
	// source loader.
	ErrNoLoader = errors.New("prompt: no loader configured")
)

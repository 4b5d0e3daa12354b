package session

import "errors"

var (
	// ErrSubmitting is returned by mutations attempted while a submission is
	// in flight.
	ErrSubmitting = errors.New("session: submission in progress")
	// ErrNotReady is returned by Submit when the submission gate is closed.
	ErrNotReady = errors.New("session: not ready to submit")
	// ErrNoSink is returned by Submit when no sink is configured.
	ErrNoSink = errors.New("session: no sink configured")
	// ErrUnknownTemplate is returned when selecting a template by a name that
	// was never loaded.
	ErrUnknownTemplate = errors.New("session: unknown template")
	// ErrUnsupportedImport is returned for payloads the session cannot read.
	ErrUnsupportedImport = errors.New("session: unsupported import")
)

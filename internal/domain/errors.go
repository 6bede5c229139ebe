package domain

import "errors"

var (
	// ErrUnauthenticated is returned when an operation requires an
	// active identity and none is set. No remote call is made.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrRemoteUnavailable wraps transport or service failures from the
	// remote store.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrNotFound is returned when a mutation target does not exist,
	// locally or remotely. Benign for delete/autosave races, surfaced
	// everywhere else.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a privileged operation is requested
	// by a non-privileged identity.
	ErrForbidden = errors.New("operation requires a privileged identity")
)

package domain

import "errors"

var (
	// ErrNotFound signals a missing business.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate business id.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidRequest signals a malformed search or write request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrForbidden signals an operation disabled in the current environment.
	ErrForbidden = errors.New("forbidden")

	// ErrBackendUnavailable signals that the storage fetch failed or timed out.
	// No partial result accompanies it.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrLocationUnavailable signals that caller coordinates could not be obtained.
	// Search treats it as "no coordinates" and never surfaces it.
	ErrLocationUnavailable = errors.New("location unavailable")
)

// KeyPrefix is the default storage key namespace.
const KeyPrefix = "bizdex:"

package docstore

import "errors"

// Sentinel errors returned by the document store. Callers test them with
// errors.Is; the underlying cause stays wrapped.
var (
	// ErrBackendUnavailable reports that the database could not be reached
	// or failed while executing the operation.
	ErrBackendUnavailable = errors.New("store backend unavailable")

	// ErrPermissionDenied reports that the access rule rejected the caller.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound reports that no document has the requested ID.
	ErrNotFound = errors.New("document not found")
)

package models

import "errors"

// Domain error kinds shared by repositories and services. Handlers map
// these to HTTP statuses with errors.Is.
var (
	// ErrNotFound means the requested entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique constraint (vehicle number, user email)
	// rejected an insert.
	ErrConflict = errors.New("duplicate key")

	// ErrUpstream means a collaborator (store, forecast feed) is
	// unreachable or missing.
	ErrUpstream = errors.New("upstream unavailable")
)

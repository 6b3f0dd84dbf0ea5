package datastore

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or is not
	// visible to the requesting user. The two cases are intentionally
	// not distinguished.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a user insert violates the
	// unique constraint on users.email.
	ErrDuplicateEmail = errors.New("email already registered")
)

package store

import "errors"

var (
	// ErrNotFound is returned when an operation references an id absent
	// from the store. No mutation has occurred when it is returned.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a required field fails validation,
	// such as an empty name. Numeric fields are normalized, not rejected.
	ErrInvalidInput = errors.New("invalid input")
)

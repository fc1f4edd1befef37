package model

import "errors"

var (
	// ErrNotFound is returned when an operation references an id that is
	// not in the collection.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidOperation is returned when operands are of the wrong kind,
	// for example a folder created from anything other than two distinct apps.
	ErrInvalidOperation = errors.New("invalid operation")
)

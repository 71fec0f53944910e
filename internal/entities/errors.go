package entities

import "errors"

var (
	// ErrNotFound is returned by stores when no record matches an identifier.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write collides with a unique index.
	ErrDuplicate = errors.New("duplicate record")

	ErrInvalidStatus = errors.New("invalid status")
)

package entity

import "errors"

// Storage level errors shared by every aggregate.
var (
	// ErrStillReferenced is returned when a row cannot be removed because
	// another row points at it.
	ErrStillReferenced = errors.New("cannot delete, still referenced")
	ErrDuplicateKey    = errors.New("record already exists")
)

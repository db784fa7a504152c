package entity

import "errors"

var (
	// ErrNotFound is returned by repositories when no entry matches.
	ErrNotFound = errors.New("entry not found")

	// ErrInvalidEntry matches every *ValidationError through errors.Is.
	ErrInvalidEntry = errors.New("invalid entry")
)

// ValidationError reports which input field of an entry operation was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEntry
}

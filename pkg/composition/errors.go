package composition

import "errors"

var (
	// ErrUnknownField is returned for a key that is not part of the record.
	ErrUnknownField = errors.New("composition: unknown field")

	// ErrInvalidValue is returned when a value has the wrong type or is out of range.
	ErrInvalidValue = errors.New("composition: invalid value")
)

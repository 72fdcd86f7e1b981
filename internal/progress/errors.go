package progress

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference is returned when a referenced word or language
	// does not exist or is inactive.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidArgument is returned for bad input values such as an
	// unknown status, level or stats period.
	ErrInvalidArgument = errors.New("invalid argument")
)

package spaces

import "errors"

var (
	// ErrSpaceNotFound is returned when the space does not exist.
	ErrSpaceNotFound = errors.New("space not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrWindowOverlap is returned when a submitted weekly schedule
	// contains overlapping windows on the same day.
	ErrWindowOverlap = errors.New("availability windows overlap")

	// ErrInternal is returned for unexpected service failures.
	ErrInternal = errors.New("service: internal error")
)

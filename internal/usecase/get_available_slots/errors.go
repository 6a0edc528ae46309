package get_available_slots

import "errors"

var (
	// ErrSpaceNotFound is returned when the space does not exist.
	ErrSpaceNotFound = errors.New("get_available_slots: space not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned for unexpected use case failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)

package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidStatusTransition is returned when the requested lifecycle
	// transition is not allowed from the reservation's current status.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for unexpected service failures.
	ErrInternal = errors.New("service: internal error")
)

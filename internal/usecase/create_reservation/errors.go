package create_reservation

import "errors"

var (
	// ErrSpaceNotFound is returned when the target space does not exist.
	ErrSpaceNotFound = errors.New("create_reservation: space not found")

	// ErrSpaceInactive is returned when the space is not accepting
	// reservations (inactive or under maintenance).
	ErrSpaceInactive = errors.New("create_reservation: space is not active")

	// ErrCapacityExceeded is returned when expected guests exceed the
	// space's capacity.
	ErrCapacityExceeded = errors.New("create_reservation: expected guests exceed space capacity")

	// ErrAdvanceWindowViolation is returned when the start is sooner than
	// the minimum notice or further out than the advance limit allows.
	ErrAdvanceWindowViolation = errors.New("create_reservation: start time violates the advance booking window")

	// ErrDurationExceeded is returned when the interval is longer than
	// the space's maximum duration.
	ErrDurationExceeded = errors.New("create_reservation: reservation duration exceeds the space limit")

	// ErrUnitBlocked is returned when the requesting unit holds an
	// active blocking penalty.
	ErrUnitBlocked = errors.New("create_reservation: unit holds an active block")

	// ErrSlotConflict is returned when the interval is outside the open
	// windows, or overlaps a block or another live reservation.
	// Resubmitting with a different interval may succeed.
	ErrSlotConflict = errors.New("create_reservation: requested slot is not available")

	// ErrLockTimeout is returned when the per-space lock could not be
	// acquired. The request did not change anything and is safe to retry.
	ErrLockTimeout = errors.New("create_reservation: lock timeout, safe to retry")

	// ErrInvalidDateRange is returned when the interval's end is not
	// strictly after its start.
	ErrInvalidDateRange = errors.New("create_reservation: end must be strictly after start")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal is returned for unexpected use case failures.
	ErrInternal = errors.New("create_reservation: internal error")
)

package reservation

import "errors"

var (
	// ErrReservationNotFound is returned when no reservation matches the id.
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrLockTimeout is returned when the row lock on a space's
	// reservations could not be acquired in time, or the serializable
	// transaction was aborted by a concurrent writer. Safe to retry.
	ErrLockTimeout = errors.New("reservation.repository: lock timeout, retry the request")

	// ErrStatusConflict is returned when a guarded status update matched
	// no row: the reservation left the expected status between load and
	// write, so a concurrent transition won.
	ErrStatusConflict = errors.New("reservation.repository: reservation status changed concurrently")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

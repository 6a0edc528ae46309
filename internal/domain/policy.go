package domain

import "time"

// CancellationPolicy classifies cancellations against a space's
// cancellation deadline. The engine only signals the classification on
// the ReservationCanceled event; penalties are the governance service's
// responsibility.
type CancellationPolicy struct{}

// IsLate reports whether cancelling the reservation at `now` falls inside
// the space's notice deadline: (start - now) < deadline hours. A deadline
// of zero disables the classification entirely.
func (CancellationPolicy) IsLate(r *Reservation, deadlineHours int, now time.Time) bool {
	if deadlineHours <= 0 {
		return false
	}
	return r.StartDatetime.Sub(now) < time.Duration(deadlineHours)*time.Hour
}

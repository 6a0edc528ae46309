package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStatusTransition is returned for any transition attempt
// outside the allowed set. The wrapped message carries the reservation
// id and the current/target states for diagnostics.
var ErrInvalidStatusTransition = errors.New("domain: invalid status transition")

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPendingApproval ReservationStatus = "pending_approval"
	StatusConfirmed       ReservationStatus = "confirmed"
	StatusRejected        ReservationStatus = "rejected"
	StatusCancelled       ReservationStatus = "cancelled"
	StatusInProgress      ReservationStatus = "in_progress"
	StatusCompleted       ReservationStatus = "completed"
	StatusNoShow          ReservationStatus = "no_show"
)

// allowedTransitions is the exhaustive transition table of the lifecycle
// state machine. Statuses missing from the map are terminal.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPendingApproval: {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed:       {StatusCancelled, StatusInProgress},
	StatusInProgress:      {StatusCompleted, StatusNoShow},
}

// CanTransitionTo reports whether the state machine allows moving from
// s to target.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true for permanent history states.
func (s ReservationStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsBlocking returns true for statuses that keep a time slot occupied.
func (s ReservationStatus) IsBlocking() bool {
	return !s.IsTerminal()
}

// ParseReservationStatus converts a stored string into a status value.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch status := ReservationStatus(s); status {
	case StatusPendingApproval, StatusConfirmed, StatusRejected,
		StatusCancelled, StatusInProgress, StatusCompleted, StatusNoShow:
		return status, nil
	default:
		return "", fmt.Errorf("domain: unknown reservation status %q", s)
	}
}

// SpaceReservationsFilter narrows manager queries over a space's
// reservations. Nil fields mean "no constraint".
type SpaceReservationsFilter struct {
	SpaceID         int64
	From            *time.Time
	To              *time.Time
	Status          *ReservationStatus
	IncludeTerminal bool
}

// Reservation is the booking aggregate: a space held by a unit's resident
// over a concrete interval, with a lifecycle state and the audit trail of
// every transition. A reservation is created once by admission, mutated
// only through its transition methods, and never physically deleted.
type Reservation struct {
	ID         int64
	SpaceID    int64
	UnitID     int64
	ResidentID int64

	Title          *string
	StartDatetime  time.Time
	EndDatetime    time.Time
	ExpectedGuests int
	Notes          *string

	Status ReservationStatus

	ApprovedBy *int64
	ApprovedAt *time.Time

	RejectedBy      *int64
	RejectedAt      *time.Time
	RejectionReason *string

	CancelledBy        *int64
	CancelledAt        *time.Time
	CancellationReason *string

	CheckedInBy *int64
	CheckedInAt *time.Time

	CompletedBy *int64
	CompletedAt *time.Time

	NoShowBy *int64
	NoShowAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReservation builds a reservation for the given space and interval.
// The initial status is PendingApproval when the space requires manager
// approval, Confirmed otherwise.
func NewReservation(
	space *Space,
	unitID, residentID int64,
	interval TimeRange,
	expectedGuests int,
	title, notes *string,
) *Reservation {
	status := StatusConfirmed
	if space.RequiresApproval {
		status = StatusPendingApproval
	}

	return &Reservation{
		SpaceID:        space.ID,
		UnitID:         unitID,
		ResidentID:     residentID,
		Title:          title,
		StartDatetime:  interval.Start,
		EndDatetime:    interval.End,
		ExpectedGuests: expectedGuests,
		Notes:          notes,
		Status:         status,
	}
}

// Interval returns the booked period as a half-open TimeRange.
func (r *Reservation) Interval() TimeRange {
	return TimeRange{Start: r.StartDatetime, End: r.EndDatetime}
}

// IsBlocking returns true while the reservation occupies its slot.
func (r *Reservation) IsBlocking() bool {
	return r.Status.IsBlocking()
}

// transitionTo applies the state machine check shared by every transition.
func (r *Reservation) transitionTo(target ReservationStatus) error {
	if !r.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: reservation id=%d: %s -> %s",
			ErrInvalidStatusTransition, r.ID, r.Status, target)
	}
	r.Status = target
	return nil
}

// Approve confirms a pending reservation. Only PendingApproval
// reservations can be approved.
func (r *Reservation) Approve(adminID int64, now time.Time) (*ReservationConfirmed, error) {
	if err := r.transitionTo(StatusConfirmed); err != nil {
		return nil, err
	}
	r.ApprovedBy = &adminID
	r.ApprovedAt = &now
	return NewReservationConfirmed(r), nil
}

// Reject declines a pending reservation with a reason.
func (r *Reservation) Reject(adminID int64, reason string, now time.Time) (*ReservationRejected, error) {
	if err := r.transitionTo(StatusRejected); err != nil {
		return nil, err
	}
	r.RejectedBy = &adminID
	r.RejectedAt = &now
	r.RejectionReason = &reason
	return NewReservationRejected(r, reason), nil
}

// Cancel releases the slot. isLate is computed by CancellationPolicy and
// only travels on the emitted event; the engine applies no penalty itself.
func (r *Reservation) Cancel(actorID int64, reason *string, isLate bool, now time.Time) (*ReservationCanceled, error) {
	if err := r.transitionTo(StatusCancelled); err != nil {
		return nil, err
	}
	r.CancelledBy = &actorID
	r.CancelledAt = &now
	r.CancellationReason = reason
	return NewReservationCanceled(r, isLate), nil
}

// CheckIn marks that the resident showed up and the booking started.
func (r *Reservation) CheckIn(actorID int64, now time.Time) (*ReservationCheckedIn, error) {
	if err := r.transitionTo(StatusInProgress); err != nil {
		return nil, err
	}
	r.CheckedInBy = &actorID
	r.CheckedInAt = &now
	return NewReservationCheckedIn(r), nil
}

// Complete closes out a reservation that ran its course.
func (r *Reservation) Complete(actorID int64, now time.Time) (*ReservationCompleted, error) {
	if err := r.transitionTo(StatusCompleted); err != nil {
		return nil, err
	}
	r.CompletedBy = &actorID
	r.CompletedAt = &now
	return NewReservationCompleted(r), nil
}

// MarkNoShow records that the resident never used the slot. Downstream
// governance consumes the event to register a violation.
func (r *Reservation) MarkNoShow(actorID int64, now time.Time) (*ReservationNoShow, error) {
	if err := r.transitionTo(StatusNoShow); err != nil {
		return nil, err
	}
	r.NoShowBy = &actorID
	r.NoShowAt = &now
	return NewReservationNoShow(r), nil
}

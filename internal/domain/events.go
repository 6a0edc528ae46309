package domain

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for the event sink. Consumers (cache invalidation,
// governance, notifications) bind on these.
const (
	RoutingKeyReservationRequested = "reservation.requested"
	RoutingKeyReservationConfirmed = "reservation.confirmed"
	RoutingKeyReservationRejected  = "reservation.rejected"
	RoutingKeyReservationCanceled  = "reservation.canceled"
	RoutingKeyReservationCheckedIn = "reservation.checked_in"
	RoutingKeyReservationCompleted = "reservation.completed"
	RoutingKeyReservationNoShow    = "reservation.no_show"
)

// Event is a fact about a reservation that downstream consumers react to.
// Events are returned explicitly from the operation that produced them
// and published by the caller after a successful commit, so there is no
// hidden event buffer inside the aggregate.
type Event interface {
	EventID() uuid.UUID
	ReservationID() int64
	SpaceID() int64
	RoutingKey() string
	OccurredAt() time.Time
}

// BaseEvent carries the fields every reservation event shares.
type BaseEvent struct {
	ID          uuid.UUID `json:"event_id"`
	Reservation int64     `json:"reservation_id"`
	Space       int64     `json:"space_id"`
	Key         string    `json:"routing_key"`
	At          time.Time `json:"occurred_at"`
}

func newBaseEvent(r *Reservation, routingKey string) BaseEvent {
	return BaseEvent{
		ID:          uuid.New(),
		Reservation: r.ID,
		Space:       r.SpaceID,
		Key:         routingKey,
		At:          time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) ReservationID() int64  { return e.Reservation }
func (e BaseEvent) SpaceID() int64        { return e.Space }
func (e BaseEvent) RoutingKey() string    { return e.Key }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// ReservationRequested is emitted when admission creates a reservation
// that still needs manager approval.
type ReservationRequested struct {
	BaseEvent
	UnitID        int64     `json:"unit_id"`
	ResidentID    int64     `json:"resident_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
}

// NewReservationRequested creates a ReservationRequested event.
func NewReservationRequested(r *Reservation) *ReservationRequested {
	return &ReservationRequested{
		BaseEvent:     newBaseEvent(r, RoutingKeyReservationRequested),
		UnitID:        r.UnitID,
		ResidentID:    r.ResidentID,
		StartDatetime: r.StartDatetime,
		EndDatetime:   r.EndDatetime,
	}
}

// Interval returns the booked period carried by the event.
func (e *ReservationRequested) Interval() TimeRange {
	return TimeRange{Start: e.StartDatetime, End: e.EndDatetime}
}

// ReservationConfirmed is emitted on auto-confirmed admission and on
// manager approval of a pending reservation.
type ReservationConfirmed struct {
	BaseEvent
	UnitID        int64     `json:"unit_id"`
	ResidentID    int64     `json:"resident_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
}

// NewReservationConfirmed creates a ReservationConfirmed event.
func NewReservationConfirmed(r *Reservation) *ReservationConfirmed {
	return &ReservationConfirmed{
		BaseEvent:     newBaseEvent(r, RoutingKeyReservationConfirmed),
		UnitID:        r.UnitID,
		ResidentID:    r.ResidentID,
		StartDatetime: r.StartDatetime,
		EndDatetime:   r.EndDatetime,
	}
}

// Interval returns the booked period carried by the event.
func (e *ReservationConfirmed) Interval() TimeRange {
	return TimeRange{Start: e.StartDatetime, End: e.EndDatetime}
}

// ReservationRejected is emitted when a manager declines a pending
// reservation.
type ReservationRejected struct {
	BaseEvent
	UnitID int64  `json:"unit_id"`
	Reason string `json:"reason"`
}

// NewReservationRejected creates a ReservationRejected event.
func NewReservationRejected(r *Reservation, reason string) *ReservationRejected {
	return &ReservationRejected{
		BaseEvent: newBaseEvent(r, RoutingKeyReservationRejected),
		UnitID:    r.UnitID,
		Reason:    reason,
	}
}

// ReservationCanceled is emitted on cancellation. IsLateCancellation is
// the CancellationPolicy verdict for the governance consumer.
type ReservationCanceled struct {
	BaseEvent
	UnitID             int64     `json:"unit_id"`
	StartDatetime      time.Time `json:"start_datetime"`
	EndDatetime        time.Time `json:"end_datetime"`
	IsLateCancellation bool      `json:"is_late_cancellation"`
}

// NewReservationCanceled creates a ReservationCanceled event.
func NewReservationCanceled(r *Reservation, isLate bool) *ReservationCanceled {
	return &ReservationCanceled{
		BaseEvent:          newBaseEvent(r, RoutingKeyReservationCanceled),
		UnitID:             r.UnitID,
		StartDatetime:      r.StartDatetime,
		EndDatetime:        r.EndDatetime,
		IsLateCancellation: isLate,
	}
}

// Interval returns the released period carried by the event.
func (e *ReservationCanceled) Interval() TimeRange {
	return TimeRange{Start: e.StartDatetime, End: e.EndDatetime}
}

// ReservationCheckedIn is emitted when a confirmed reservation starts.
type ReservationCheckedIn struct {
	BaseEvent
	UnitID int64 `json:"unit_id"`
}

// NewReservationCheckedIn creates a ReservationCheckedIn event.
func NewReservationCheckedIn(r *Reservation) *ReservationCheckedIn {
	return &ReservationCheckedIn{
		BaseEvent: newBaseEvent(r, RoutingKeyReservationCheckedIn),
		UnitID:    r.UnitID,
	}
}

// ReservationCompleted is emitted when a reservation ran its course.
type ReservationCompleted struct {
	BaseEvent
	UnitID int64 `json:"unit_id"`
}

// NewReservationCompleted creates a ReservationCompleted event.
func NewReservationCompleted(r *Reservation) *ReservationCompleted {
	return &ReservationCompleted{
		BaseEvent: newBaseEvent(r, RoutingKeyReservationCompleted),
		UnitID:    r.UnitID,
	}
}

// ReservationNoShow is emitted when the resident never used the slot.
type ReservationNoShow struct {
	BaseEvent
	UnitID int64 `json:"unit_id"`
}

// NewReservationNoShow creates a ReservationNoShow event.
func NewReservationNoShow(r *Reservation) *ReservationNoShow {
	return &ReservationNoShow{
		BaseEvent: newBaseEvent(r, RoutingKeyReservationNoShow),
		UnitID:    r.UnitID,
	}
}

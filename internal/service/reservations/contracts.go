package reservations

import (
	"context"
	"time"

	"github.com/condoflow/booking-service/internal/domain"
)

// ReservationRepository loads and persists reservations.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation, from domain.ReservationStatus) error
	ListByUnit(ctx context.Context, unitID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	ListBySpace(ctx context.Context, filter domain.SpaceReservationsFilter) ([]*domain.Reservation, error)
}

// SpaceRepository supplies the cancellation deadline of the reserved space.
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// EventPublisher receives the event produced by a lifecycle transition.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event)
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the leveled logger consumed by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

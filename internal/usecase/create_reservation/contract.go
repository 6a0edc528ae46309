package create_reservation

import (
	"context"
	"time"

	"github.com/condoflow/booking-service/internal/domain"
)

// SpaceRepository is the administrative space data read by admission.
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	ListAvailability(ctx context.Context, spaceID int64) ([]*domain.SpaceAvailability, error)
	ListBlocksInRange(ctx context.Context, spaceID int64, period domain.TimeRange) ([]*domain.SpaceBlock, error)
}

// ReservationRepository creates reservations and finds conflicting ones.
// FindConflicting must lock the matched rows when called inside a
// transaction; that lock is what serializes admission per space.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindConflicting(ctx context.Context, spaceID int64, interval domain.TimeRange, excludeReservationID *int64) ([]*domain.Reservation, error)
}

// GovernanceClient answers whether a unit holds an active blocking
// penalty.
type GovernanceClient interface {
	HasActiveBlock(ctx context.Context, unitID int64) (bool, error)
}

// TransactionManager runs the conflict check + insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher receives the domain event once the reservation is
// committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event)
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the leveled logger consumed by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

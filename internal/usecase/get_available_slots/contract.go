package get_available_slots

import (
	"context"
	"time"

	"github.com/condoflow/booking-service/internal/domain"
)

// SpaceRepository is the space data needed to compute a day's slots.
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	ListAvailability(ctx context.Context, spaceID int64) ([]*domain.SpaceAvailability, error)
	ListBlocksInRange(ctx context.Context, spaceID int64, period domain.TimeRange) ([]*domain.SpaceBlock, error)
}

// ReservationRepository supplies the reservations that still occupy
// their slots.
type ReservationRepository interface {
	ListBlockingBySpace(ctx context.Context, spaceID int64, period domain.TimeRange) ([]*domain.Reservation, error)
}

// SlotsCache is the per-space, per-date availability cache. A nil cache
// disables caching entirely.
type SlotsCache interface {
	Get(ctx context.Context, spaceID int64, date time.Time, dest interface{}) error
	Set(ctx context.Context, spaceID int64, date time.Time, value interface{}) error
}

// Logger is the leveled logger consumed by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

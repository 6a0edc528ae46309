package spaces

import (
	"context"

	"github.com/condoflow/booking-service/internal/domain"
)

// SpaceRepository persists spaces, schedules, blocks and rules.
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	Create(ctx context.Context, sp *domain.Space) (*domain.Space, error)
	Update(ctx context.Context, sp *domain.Space) error
	ListAvailability(ctx context.Context, spaceID int64) ([]*domain.SpaceAvailability, error)
	ReplaceAvailability(ctx context.Context, spaceID int64, windows []*domain.SpaceAvailability) error
	CreateBlock(ctx context.Context, block *domain.SpaceBlock) (*domain.SpaceBlock, error)
	ListRules(ctx context.Context, spaceID int64) ([]*domain.SpaceRule, error)
}

// TransactionManager runs the schedule swap's delete + insert pair
// atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsCache is the availability cache invalidated on schedule and
// block mutations. May be nil when caching is disabled.
type SlotsCache interface {
	InvalidateSpace(ctx context.Context, spaceID int64) error
	InvalidateRange(ctx context.Context, spaceID int64, interval domain.TimeRange) error
}

// Logger is the leveled logger consumed by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

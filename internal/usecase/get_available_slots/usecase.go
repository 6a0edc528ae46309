package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	spaceRepo "github.com/condoflow/booking-service/internal/infra/storage/space"
)

// UseCase computes the bookable slot layout of a space for one date by
// combining weekly windows, ad-hoc blocks and live reservations.
type UseCase struct {
	spaceRepo       SpaceRepository
	reservationRepo ReservationRepository
	cache           SlotsCache
	logger          Logger
}

// NewUseCase creates the use case. cache may be nil to disable caching.
func NewUseCase(
	spaceRepo SpaceRepository,
	reservationRepo ReservationRepository,
	cache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaceRepo:       spaceRepo,
		reservationRepo: reservationRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute returns the ordered slot sequence for the space and date.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: space=%d, date=%s", req.SpaceID, req.Date.Format("2006-01-02"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	if uc.cache != nil {
		var cached Response
		if err := uc.cache.Get(ctx, req.SpaceID, req.Date, &cached); err == nil {
			uc.logger.Info("GetAvailableSlots: cache hit for space=%d date=%s",
				req.SpaceID, req.Date.Format("2006-01-02"))
			return &cached, nil
		}
	}

	if _, err := uc.spaceRepo.GetByID(ctx, req.SpaceID); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("GetAvailableSlots: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	windows, err := uc.spaceRepo.ListAvailability(ctx, req.SpaceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list availability: %v", err)
		return nil, fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
	}

	day := dayRange(req.Date)

	blocks, err := uc.spaceRepo.ListBlocksInRange(ctx, req.SpaceID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocks: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.ListBlockingBySpace(ctx, req.SpaceID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	slots, err := buildDaySlots(windows, blocks, reservations, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	response := &Response{
		SpaceID: req.SpaceID,
		Date:    day.Start,
		Slots:   slots,
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, req.SpaceID, req.Date, response); err != nil {
			// Serving from Postgres is always correct; a cache write
			// failure only costs the next request a recompute.
			uc.logger.Warn("GetAvailableSlots: cache set failed for space=%d: %v", req.SpaceID, err)
		}
	}

	uc.logger.Info("GetAvailableSlots: %d slots for space=%d date=%s",
		len(slots), req.SpaceID, req.Date.Format("2006-01-02"))
	return response, nil
}

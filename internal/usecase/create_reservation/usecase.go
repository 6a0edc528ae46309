package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/condoflow/booking-service/internal/domain"
	reservationstorage "github.com/condoflow/booking-service/internal/infra/storage/reservation"
	spacestorage "github.com/condoflow/booking-service/internal/infra/storage/space"
)

// UseCase admits booking requests: it runs the full validation chain and
// inserts the reservation inside a serializable transaction so two
// overlapping requests for the same space can never both succeed.
type UseCase struct {
	spaceRepo       SpaceRepository
	reservationRepo ReservationRepository
	governance      GovernanceClient
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the admission use case.
func NewUseCase(
	spaceRepo SpaceRepository,
	reservationRepo ReservationRepository,
	governance GovernanceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaceRepo:       spaceRepo,
		reservationRepo: reservationRepo,
		governance:      governance,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute validates the request and creates the reservation. Checks run
// cheapest first and stop at the first failure; the conflict check and
// the insert happen together inside the transaction. The domain event is
// published only after the transaction commits.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("[CreateReservation] Invalid request: %v", err)
		return nil, err
	}

	interval, err := domain.NewTimeRange(req.StartDatetime, req.EndDatetime)
	if err != nil {
		uc.logger.Warn("[CreateReservation] Invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}

	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spacestorage.ErrSpaceNotFound) {
			uc.logger.Warn("[CreateReservation] Space %d not found", req.SpaceID)
			return nil, fmt.Errorf("%w: id=%d", ErrSpaceNotFound, req.SpaceID)
		}
		uc.logger.Error("[CreateReservation] Failed to get space %d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: Execute - get space: %v", ErrInternal, err)
	}

	if !space.IsActive() {
		return nil, fmt.Errorf("%w: space id=%d status=%s", ErrSpaceInactive, space.ID, space.Status)
	}

	if req.ExpectedGuests > space.Capacity {
		return nil, fmt.Errorf("%w: expected=%d capacity=%d",
			ErrCapacityExceeded, req.ExpectedGuests, space.Capacity)
	}

	now := uc.timeProvider.Now()
	if err := validateAdvanceWindow(space, interval.Start, now); err != nil {
		return nil, err
	}
	if err := validateDuration(space, interval); err != nil {
		return nil, err
	}

	blocked, err := uc.governance.HasActiveBlock(ctx, req.UnitID)
	if err != nil {
		uc.logger.Error("[CreateReservation] Governance check failed for unit %d: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: Execute - governance check: %v", ErrInternal, err)
	}
	if blocked {
		return nil, fmt.Errorf("%w: unit id=%d", ErrUnitBlocked, req.UnitID)
	}

	windows, err := uc.spaceRepo.ListAvailability(ctx, space.ID)
	if err != nil {
		uc.logger.Error("[CreateReservation] Failed to list availability for space %d: %v", space.ID, err)
		return nil, fmt.Errorf("%w: Execute - list availability: %v", ErrInternal, err)
	}
	covered, err := coveredByWindows(interval, windows)
	if err != nil {
		uc.logger.Error("[CreateReservation] Failed to anchor windows for space %d: %v", space.ID, err)
		return nil, fmt.Errorf("%w: Execute - anchor windows: %v", ErrInternal, err)
	}
	if !covered {
		return nil, fmt.Errorf("%w: interval is outside the space's open hours", ErrSlotConflict)
	}

	var created *domain.Reservation
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicting, err := uc.reservationRepo.FindConflicting(txCtx, space.ID, interval, nil)
		if err != nil {
			return fmt.Errorf("find conflicting reservations: %w", err)
		}
		if len(conflicting) > 0 {
			return fmt.Errorf("%w: overlaps reservation id=%d", ErrSlotConflict, conflicting[0].ID)
		}

		blocks, err := uc.spaceRepo.ListBlocksInRange(txCtx, space.ID, interval)
		if err != nil {
			return fmt.Errorf("list blocks: %w", err)
		}
		for _, b := range blocks {
			if b.Interval().Overlaps(interval) {
				return fmt.Errorf("%w: overlaps block id=%d (%s)", ErrSlotConflict, b.ID, b.Reason)
			}
		}

		reservation := domain.NewReservation(space, req.UnitID, req.ResidentID,
			interval, req.ExpectedGuests, req.Title, req.Notes)

		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, ErrSlotConflict):
			uc.logger.Info("[CreateReservation] Slot conflict for space %d: %v", space.ID, txErr)
			return nil, txErr
		case errors.Is(txErr, reservationstorage.ErrLockTimeout):
			uc.logger.Warn("[CreateReservation] Lock timeout for space %d: %v", space.ID, txErr)
			return nil, fmt.Errorf("%w: space id=%d", ErrLockTimeout, space.ID)
		default:
			uc.logger.Error("[CreateReservation] Transaction failed for space %d: %v", space.ID, txErr)
			return nil, fmt.Errorf("%w: Execute - admission transaction: %v", ErrInternal, txErr)
		}
	}

	var event domain.Event
	if created.Status == domain.StatusPendingApproval {
		event = domain.NewReservationRequested(created)
	} else {
		event = domain.NewReservationConfirmed(created)
	}
	uc.publisher.Publish(ctx, event)

	uc.logger.Info("[CreateReservation] Created reservation %d for space %d (status=%s)",
		created.ID, created.SpaceID, created.Status)
	return fromDomain(created), nil
}

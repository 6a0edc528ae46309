package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/condoflow/booking-service/internal/domain"
	reservationRepo "github.com/condoflow/booking-service/internal/infra/storage/reservation"
	"github.com/condoflow/booking-service/internal/service/reservations/models"
)

// Service drives the reservation lifecycle. Every transition loads the
// reservation, applies the state machine, persists the result and
// publishes exactly one domain event.
type Service struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	publisher       EventPublisher
	policy          domain.CancellationPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates a reservation lifecycle service.
func NewService(
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		publisher:       publisher,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID fetches a single reservation.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	reservation, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(reservation), nil
}

// GetUnitReservations returns a unit's reservation history, optionally
// filtered by status.
func (s *Service) GetUnitReservations(ctx context.Context, req *models.GetUnitReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUnitReservations: fetching reservations for unit=%d, status=%v", req.UnitID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUnitReservations: invalid status=%s for unit=%d", *req.Status, req.UnitID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.ListByUnit(ctx, req.UnitID, domainStatus)
	if err != nil {
		s.logger.Error("GetUnitReservations: repository error for unit=%d: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: GetUnitReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUnitReservations: fetched %d reservations for unit=%d", len(reservations), req.UnitID)
	return models.FromDomainReservationList(reservations), nil
}

// GetSpaceReservations returns a space's reservations with optional
// period, status and terminal-inclusion filters.
func (s *Service) GetSpaceReservations(ctx context.Context, req *models.GetSpaceReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetSpaceReservations: fetching reservations for space=%d", req.SpaceID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSpaceReservations: invalid filter for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.ListBySpace(ctx, filter)
	if err != nil {
		s.logger.Error("GetSpaceReservations: repository error for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: GetSpaceReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSpaceReservations: fetched %d reservations for space=%d", len(reservations), req.SpaceID)
	return models.FromDomainReservationList(reservations), nil
}

// Approve confirms a pending reservation.
func (s *Service) Approve(ctx context.Context, id int64, adminID int64) (*models.ReservationResponse, error) {
	reservation, err := s.load(ctx, "Approve", id)
	if err != nil {
		return nil, err
	}

	from := reservation.Status
	event, err := reservation.Approve(adminID, s.timeProvider.Now())
	if err != nil {
		return nil, s.mapTransitionError("Approve", id, err)
	}

	return s.persistAndPublish(ctx, "Approve", reservation, from, event)
}

// Reject declines a pending reservation with a reason.
func (s *Service) Reject(ctx context.Context, id int64, req *models.RejectReservationRequest) (*models.ReservationResponse, error) {
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxRejectionReasonLength {
		return nil, fmt.Errorf("%w: rejection reason exceeds %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}

	reservation, err := s.load(ctx, "Reject", id)
	if err != nil {
		return nil, err
	}

	from := reservation.Status
	event, err := reservation.Reject(req.AdminID, req.Reason, s.timeProvider.Now())
	if err != nil {
		return nil, s.mapTransitionError("Reject", id, err)
	}

	return s.persistAndPublish(ctx, "Reject", reservation, from, event)
}

// Cancel releases a reserved slot. Lateness relative to the space's
// cancellation deadline is computed here and travels on the event only;
// no penalty is applied in this service.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	reservation, err := s.load(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	space, err := s.spaceRepo.GetByID(ctx, reservation.SpaceID)
	if err != nil {
		s.logger.Error("Cancel: failed to get space %d for reservation %d: %v", reservation.SpaceID, id, err)
		return nil, fmt.Errorf("%w: Cancel - get space: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	isLate := s.policy.IsLate(reservation, space.CancellationDeadlineHours, now)

	from := reservation.Status
	event, err := reservation.Cancel(req.ActorID, req.Reason, isLate, now)
	if err != nil {
		return nil, s.mapTransitionError("Cancel", id, err)
	}

	if isLate {
		s.logger.Info("Cancel: reservation %d cancelled late (deadline %dh)", id, space.CancellationDeadlineHours)
	}
	return s.persistAndPublish(ctx, "Cancel", reservation, from, event)
}

// CheckIn marks that the resident showed up and the booking started.
func (s *Service) CheckIn(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	reservation, err := s.load(ctx, "CheckIn", id)
	if err != nil {
		return nil, err
	}

	from := reservation.Status
	event, err := reservation.CheckIn(actorID, s.timeProvider.Now())
	if err != nil {
		return nil, s.mapTransitionError("CheckIn", id, err)
	}

	return s.persistAndPublish(ctx, "CheckIn", reservation, from, event)
}

// Complete closes out a reservation that ran its course.
func (s *Service) Complete(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	reservation, err := s.load(ctx, "Complete", id)
	if err != nil {
		return nil, err
	}

	from := reservation.Status
	event, err := reservation.Complete(actorID, s.timeProvider.Now())
	if err != nil {
		return nil, s.mapTransitionError("Complete", id, err)
	}

	return s.persistAndPublish(ctx, "Complete", reservation, from, event)
}

// MarkNoShow records that the resident never used the slot.
func (s *Service) MarkNoShow(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	reservation, err := s.load(ctx, "MarkNoShow", id)
	if err != nil {
		return nil, err
	}

	from := reservation.Status
	event, err := reservation.MarkNoShow(actorID, s.timeProvider.Now())
	if err != nil {
		return nil, s.mapTransitionError("MarkNoShow", id, err)
	}

	return s.persistAndPublish(ctx, "MarkNoShow", reservation, from, event)
}

// load fetches a reservation and maps the not-found case.
func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// persistAndPublish writes the transitioned reservation and publishes
// its event after the write succeeds. The write is guarded on the
// status the transition started from, so when two transitions race the
// loser surfaces as an invalid transition and publishes nothing.
func (s *Service) persistAndPublish(ctx context.Context, op string, reservation *domain.Reservation, from domain.ReservationStatus, event domain.Event) (*models.ReservationResponse, error) {
	if err := s.reservationRepo.Update(ctx, reservation, from); err != nil {
		if errors.Is(err, reservationRepo.ErrStatusConflict) {
			s.logger.Warn("%s: reservation %d left status %s concurrently", op, reservation.ID, from)
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatusTransition, err)
		}
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: failed to update reservation %d: %v", op, reservation.ID, err)
		return nil, fmt.Errorf("%w: %s - update reservation: %v", ErrInternal, op, err)
	}

	s.publisher.Publish(ctx, event)

	s.logger.Info("%s: reservation %d is now %s", op, reservation.ID, reservation.Status)
	return models.FromDomainReservation(reservation), nil
}

func (s *Service) mapTransitionError(op string, id int64, err error) error {
	if errors.Is(err, domain.ErrInvalidStatusTransition) {
		s.logger.Warn("%s: reservation id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidStatusTransition, err)
	}
	s.logger.Error("%s: reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - transition: %v", ErrInternal, op, err)
}

package spaces

import (
	"context"
	"errors"
	"fmt"

	"github.com/condoflow/booking-service/internal/domain"
	spaceRepo "github.com/condoflow/booking-service/internal/infra/storage/space"
	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

// Service administers spaces: registration, schedules, closures.
// Mutations invalidate the availability cache for the touched space.
type Service struct {
	spaceRepo SpaceRepository
	txManager TransactionManager
	cache     SlotsCache
	logger    Logger
}

// NewService creates a space administration service. cache may be nil.
func NewService(spaceRepo SpaceRepository, txManager TransactionManager, cache SlotsCache, logger Logger) *Service {
	return &Service{
		spaceRepo: spaceRepo,
		txManager: txManager,
		cache:     cache,
		logger:    logger,
	}
}

// GetSpace fetches a space with its weekly schedule and rules.
func (s *Service) GetSpace(ctx context.Context, id int64) (*models.SpaceResponse, error) {
	space, err := s.load(ctx, "GetSpace", id)
	if err != nil {
		return nil, err
	}

	windows, err := s.spaceRepo.ListAvailability(ctx, id)
	if err != nil {
		s.logger.Error("GetSpace: failed to list availability for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetSpace - list availability: %v", ErrInternal, err)
	}

	rules, err := s.spaceRepo.ListRules(ctx, id)
	if err != nil {
		s.logger.Error("GetSpace: failed to list rules for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetSpace - list rules: %v", ErrInternal, err)
	}

	return models.FromDomainSpace(space, windows, rules), nil
}

// CreateSpace registers a new bookable space.
func (s *Service) CreateSpace(ctx context.Context, req *models.CreateSpaceRequest) (*models.SpaceResponse, error) {
	space := &domain.Space{
		Name:                      req.Name,
		Type:                      req.Type,
		Status:                    domain.SpaceStatus(req.Status),
		Capacity:                  req.Capacity,
		RequiresApproval:          req.RequiresApproval,
		MaxDurationHours:          req.MaxDurationHours,
		MaxAdvanceDays:            req.MaxAdvanceDays,
		MinAdvanceHours:           req.MinAdvanceHours,
		CancellationDeadlineHours: req.CancellationDeadlineHours,
	}
	if space.Status == "" {
		space.Status = domain.SpaceStatusActive
	}

	if err := validateSpace(space); err != nil {
		s.logger.Warn("CreateSpace: invalid space: %v", err)
		return nil, err
	}

	created, err := s.spaceRepo.Create(ctx, space)
	if err != nil {
		s.logger.Error("CreateSpace: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSpace: created space %d (%s)", created.ID, created.Name)
	return models.FromDomainSpace(created, nil, nil), nil
}

// UpdateSpace applies a partial update to a space's administrative
// fields and invalidates its cached availability.
func (s *Service) UpdateSpace(ctx context.Context, id int64, req *models.UpdateSpaceRequest) (*models.SpaceResponse, error) {
	space, err := s.load(ctx, "UpdateSpace", id)
	if err != nil {
		return nil, err
	}

	applyUpdate(space, req)

	if err := validateSpace(space); err != nil {
		s.logger.Warn("UpdateSpace: invalid space %d: %v", id, err)
		return nil, err
	}

	if err := s.spaceRepo.Update(ctx, space); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("UpdateSpace: repository error for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSpace - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "UpdateSpace", id)

	windows, err := s.spaceRepo.ListAvailability(ctx, id)
	if err != nil {
		s.logger.Error("UpdateSpace: failed to list availability for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSpace - list availability: %v", ErrInternal, err)
	}
	rules, err := s.spaceRepo.ListRules(ctx, id)
	if err != nil {
		s.logger.Error("UpdateSpace: failed to list rules for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSpace - list rules: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSpace: updated space %d", id)
	return models.FromDomainSpace(space, windows, rules), nil
}

// ReplaceSchedule swaps a space's full weekly schedule. The new windows
// are validated as a set before any write happens.
func (s *Service) ReplaceSchedule(ctx context.Context, id int64, req *models.ReplaceScheduleRequest) (*models.SpaceResponse, error) {
	space, err := s.load(ctx, "ReplaceSchedule", id)
	if err != nil {
		return nil, err
	}

	windows := req.ToDomainWindows(id)
	if err := domain.ValidateWindows(windows); err != nil {
		s.logger.Warn("ReplaceSchedule: invalid schedule for space %d: %v", id, err)
		if errors.Is(err, domain.ErrWindowOverlap) {
			return nil, fmt.Errorf("%w: %v", ErrWindowOverlap, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Delete-then-insert must commit as one unit: a failed insert after
	// an autocommitted delete would leave the space with no schedule.
	txErr := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.spaceRepo.ReplaceAvailability(txCtx, id, windows)
	})
	if txErr != nil {
		s.logger.Error("ReplaceSchedule: repository error for space %d: %v", id, txErr)
		return nil, fmt.Errorf("%w: ReplaceSchedule - repository error: %v", ErrInternal, txErr)
	}

	s.invalidate(ctx, "ReplaceSchedule", id)

	stored, err := s.spaceRepo.ListAvailability(ctx, id)
	if err != nil {
		s.logger.Error("ReplaceSchedule: failed to list availability for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: ReplaceSchedule - list availability: %v", ErrInternal, err)
	}
	rules, err := s.spaceRepo.ListRules(ctx, id)
	if err != nil {
		s.logger.Error("ReplaceSchedule: failed to list rules for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: ReplaceSchedule - list rules: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceSchedule: replaced schedule of space %d with %d windows", id, len(windows))
	return models.FromDomainSpace(space, stored, rules), nil
}

// CreateBlock closes a space for a concrete period. Existing
// reservations inside the period are left untouched; only the cached
// availability for the touched days is dropped.
func (s *Service) CreateBlock(ctx context.Context, id int64, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	if _, err := s.load(ctx, "CreateBlock", id); err != nil {
		return nil, err
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: block reason is required", ErrInvalidInput)
	}

	block := &domain.SpaceBlock{
		SpaceID:       id,
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
		Reason:        req.Reason,
		CreatedBy:     req.CreatedBy,
		Notes:         req.Notes,
	}
	if err := block.Validate(); err != nil {
		s.logger.Warn("CreateBlock: invalid block for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.spaceRepo.CreateBlock(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlock: repository error for space %d: %v", id, err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRange(ctx, id, created.Interval()); err != nil {
			s.logger.Warn("CreateBlock: cache invalidation failed for space %d: %v", id, err)
		}
	}

	s.logger.Info("CreateBlock: created block %d for space %d (%s)", created.ID, id, created.Reason)
	return models.FromDomainBlock(created), nil
}

// load fetches a space and maps the not-found case.
func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Space, error) {
	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("%s: space id=%d not found", op, id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("%s: repository error for space id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return space, nil
}

// invalidate drops the whole cached availability of a space.
func (s *Service) invalidate(ctx context.Context, op string, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSpace(ctx, id); err != nil {
		s.logger.Warn("%s: cache invalidation failed for space %d: %v", op, id, err)
	}
}

// applyUpdate copies non-nil request fields onto the space.
func applyUpdate(space *domain.Space, req *models.UpdateSpaceRequest) {
	if req.Name != nil {
		space.Name = *req.Name
	}
	if req.Type != nil {
		space.Type = *req.Type
	}
	if req.Status != nil {
		space.Status = domain.SpaceStatus(*req.Status)
	}
	if req.Capacity != nil {
		space.Capacity = *req.Capacity
	}
	if req.RequiresApproval != nil {
		space.RequiresApproval = *req.RequiresApproval
	}
	if req.MaxDurationHours != nil {
		space.MaxDurationHours = req.MaxDurationHours
	}
	if req.MaxAdvanceDays != nil {
		space.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.MinAdvanceHours != nil {
		space.MinAdvanceHours = *req.MinAdvanceHours
	}
	if req.CancellationDeadlineHours != nil {
		space.CancellationDeadlineHours = *req.CancellationDeadlineHours
	}
}

// validateSpace checks the administrative invariants of a space.
func validateSpace(space *domain.Space) error {
	if space.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	switch space.Status {
	case domain.SpaceStatusActive, domain.SpaceStatusInactive, domain.SpaceStatusMaintenance:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, space.Status)
	}
	if space.Capacity < domain.MinCapacity || space.Capacity > domain.MaxCapacity {
		return fmt.Errorf("%w: capacity must be in [%d..%d]", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}
	if space.MaxDurationHours != nil && (*space.MaxDurationHours <= 0 || *space.MaxDurationHours > domain.MaxDurationHoursLimit) {
		return fmt.Errorf("%w: maxDurationHours must be in [1..%d]", ErrInvalidInput, domain.MaxDurationHoursLimit)
	}
	if space.MaxAdvanceDays < 0 || space.MaxAdvanceDays > domain.MaxAdvanceDaysLimit {
		return fmt.Errorf("%w: maxAdvanceDays must be in [0..%d]", ErrInvalidInput, domain.MaxAdvanceDaysLimit)
	}
	if space.MinAdvanceHours < domain.MinAdvanceHoursLimit {
		return fmt.Errorf("%w: minAdvanceHours must not be negative", ErrInvalidInput)
	}
	if space.CancellationDeadlineHours < 0 {
		return fmt.Errorf("%w: cancellationDeadlineHours must not be negative", ErrInvalidInput)
	}
	return nil
}

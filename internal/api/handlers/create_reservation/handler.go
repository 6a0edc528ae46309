package create_reservation

import (
	"errors"
	"net/http"

	"github.com/condoflow/booking-service/internal/api/handlers"
	"github.com/condoflow/booking-service/internal/api/middleware"
	createReservation "github.com/condoflow/booking-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDatetime    = "invalid datetime format, expected RFC 3339"
	msgMissingUserID      = "missing user ID"
	msgSpaceNotFound      = "space not found"
	msgSpaceInactive      = "space is not accepting reservations"
	msgCapacityExceeded   = "expected guests exceed the space capacity"
	msgAdvanceWindow      = "start time violates the advance booking window"
	msgDurationExceeded   = "reservation duration exceeds the space limit"
	msgUnitBlocked        = "unit has an active block and cannot reserve"
	msgSlotConflict       = "requested slot is not available"
	msgInvalidDateRange   = "end must be after start"
	msgLockTimeout        = "space is busy, please retry"
	msgInvalidInput       = "invalid reservation data"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	residentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(residentID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSpaceNotFound):
			h.logger.Warn("POST /reservations - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createReservation.ErrSpaceInactive):
			h.logger.Warn("POST /reservations - Space inactive: space_id=%d", req.SpaceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSpaceInactive)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: space_id=%d, guests=%d", req.SpaceID, req.ExpectedGuests)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrAdvanceWindowViolation):
			h.logger.Warn("POST /reservations - Advance window violation: space_id=%d", req.SpaceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgAdvanceWindow)

		case errors.Is(err, createReservation.ErrDurationExceeded):
			h.logger.Warn("POST /reservations - Duration exceeded: space_id=%d", req.SpaceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDurationExceeded)

		case errors.Is(err, createReservation.ErrUnitBlocked):
			h.logger.Warn("POST /reservations - Unit blocked: unit_id=%d", req.UnitID)
			handlers.RespondForbidden(w, msgUnitBlocked)

		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: space_id=%d", req.SpaceID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrLockTimeout):
			h.logger.Warn("POST /reservations - Lock timeout: space_id=%d", req.SpaceID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgLockTimeout)

		case errors.Is(err, createReservation.ErrInvalidDateRange):
			h.logger.Warn("POST /reservations - Invalid date range: space_id=%d", req.SpaceID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: space_id=%d, unit_id=%d, error=%v",
				req.SpaceID, req.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, space_id=%d, unit_id=%d, status=%s",
		result.ID, result.SpaceID, result.UnitID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

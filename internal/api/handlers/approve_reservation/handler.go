package approve_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condoflow/booking-service/internal/api/handlers"
	"github.com/condoflow/booking-service/internal/api/middleware"
	"github.com/condoflow/booking-service/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation ID"
	msgMissingUserID        = "missing user ID"
	msgNotFound             = "reservation not found"
	msgCannotApprove        = "reservation cannot be approved in its current status"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/approve - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Approve(r.Context(), reservationID, adminID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/approve - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /reservations/{id}/approve - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotApprove)

		default:
			h.logger.Error("PATCH /reservations/{id}/approve - Failed to approve: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/approve - Reservation approved: reservation_id=%d, admin_id=%d",
		reservationID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_unit_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condoflow/booking-service/internal/api/handlers"
	"github.com/condoflow/booking-service/internal/service/reservations"
	"github.com/condoflow/booking-service/internal/service/reservations/models"
)

const (
	msgInvalidUnitID = "invalid unit ID"
	msgInvalidStatus = "invalid status filter"
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

// Handle GET /api/v1/units/{unitId}/reservations?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /units/{id}/reservations - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	req := &models.GetUnitReservationsRequest{UnitID: unitID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetUnitReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /units/{id}/reservations - Invalid status filter: unit_id=%d", unitID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /units/{id}/reservations - Failed to list reservations: unit_id=%d, error=%v",
				unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /units/{id}/reservations - Retrieved %d reservations: unit_id=%d",
		len(result.Reservations), unitID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

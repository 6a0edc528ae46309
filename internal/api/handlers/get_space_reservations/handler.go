package get_space_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/condoflow/booking-service/internal/api/handlers"
	"github.com/condoflow/booking-service/internal/domain"
	"github.com/condoflow/booking-service/internal/service/reservations"
	"github.com/condoflow/booking-service/internal/service/reservations/models"
)

const (
	msgInvalidSpaceID = "invalid space ID"
	msgInvalidDate    = "invalid date format, expected YYYY-MM-DD"
	msgInvalidFilter  = "invalid filter parameters"
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

// Handle GET /api/v1/spaces/{spaceId}/reservations?from=&to=&status=&includeTerminal=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/reservations - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	req := &models.GetSpaceReservationsRequest{SpaceID: spaceID}
	query := r.URL.Query()

	if from := query.Get("from"); from != "" {
		t, err := time.Parse(domain.DateFormat, from)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.From = &t
	}
	if to := query.Get("to"); to != "" {
		t, err := time.Parse(domain.DateFormat, to)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// End of the "to" day keeps the filter inclusive.
		end := t.AddDate(0, 0, 1)
		req.To = &end
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeTerminal = query.Get("includeTerminal") == "true"

	result, err := h.service.GetSpaceReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/reservations - Invalid filter: space_id=%d", spaceID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /spaces/{id}/reservations - Failed to list reservations: space_id=%d, error=%v",
				spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/reservations - Retrieved %d reservations: space_id=%d",
		len(result.Reservations), spaceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

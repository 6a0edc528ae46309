package update_space_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condoflow/booking-service/internal/api/handlers"
	"github.com/condoflow/booking-service/internal/service/spaces"
	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

const (
	msgInvalidSpaceID     = "invalid space ID"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "space not found"
	msgWindowOverlap      = "availability windows overlap"
	msgInvalidInput       = "invalid schedule data"
)

type Handler struct {
	service SpaceService
	logger  Logger
}

func NewHandler(service SpaceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/spaces/{spaceId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /spaces/{id}/schedule - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	var req models.ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /spaces/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceSchedule(r.Context(), spaceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, spaces.ErrSpaceNotFound):
			h.logger.Warn("PUT /spaces/{id}/schedule - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spaces.ErrWindowOverlap):
			h.logger.Warn("PUT /spaces/{id}/schedule - Window overlap: space_id=%d", spaceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgWindowOverlap)

		case errors.Is(err, spaces.ErrInvalidInput):
			h.logger.Warn("PUT /spaces/{id}/schedule - Invalid input: space_id=%d, %v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /spaces/{id}/schedule - Failed to replace schedule: space_id=%d, error=%v",
				spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /spaces/{id}/schedule - Schedule replaced: space_id=%d, windows=%d",
		spaceID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

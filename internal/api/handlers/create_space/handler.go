package create_space

import (
	"errors"
	"net/http"

	"github.com/condoflow/booking-service/internal/api/handlers"
	"github.com/condoflow/booking-service/internal/service/spaces"
	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid space data"
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

// Handle POST /api/v1/spaces
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /spaces - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSpace(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, spaces.ErrInvalidInput):
			h.logger.Warn("POST /spaces - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /spaces - Failed to create space: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /spaces - Space created: space_id=%d, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

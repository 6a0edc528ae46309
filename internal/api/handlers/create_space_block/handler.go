package create_space_block

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/condoflow/booking-service/internal/api/handlers"
	"github.com/condoflow/booking-service/internal/api/middleware"
	"github.com/condoflow/booking-service/internal/service/spaces"
	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

const (
	msgInvalidSpaceID     = "invalid space ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDatetime    = "invalid datetime format, expected RFC 3339"
	msgMissingUserID      = "missing user ID"
	msgNotFound           = "space not found"
	msgInvalidInput       = "invalid block data"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartDatetime string  `json:"startDatetime"` // RFC 3339
	EndDatetime   string  `json:"endDatetime"`   // RFC 3339
	Reason        string  `json:"reason"`
	Notes         *string `json:"notes,omitempty"`
}

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

// Handle POST /api/v1/spaces/{spaceId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /spaces/{id}/blocks - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	createdBy, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /spaces/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /spaces/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDatetime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDatetime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.service.CreateBlock(r.Context(), spaceID, &models.CreateBlockRequest{
		StartDatetime: start,
		EndDatetime:   end,
		Reason:        req.Reason,
		CreatedBy:     createdBy,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, spaces.ErrSpaceNotFound):
			h.logger.Warn("POST /spaces/{id}/blocks - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spaces.ErrInvalidInput):
			h.logger.Warn("POST /spaces/{id}/blocks - Invalid input: space_id=%d, %v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /spaces/{id}/blocks - Failed to create block: space_id=%d, error=%v",
				spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /spaces/{id}/blocks - Block created: block_id=%d, space_id=%d", result.ID, spaceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package update_space

import (
	"context"

	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

type SpaceService interface {
	UpdateSpace(ctx context.Context, id int64, req *models.UpdateSpaceRequest) (*models.SpaceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

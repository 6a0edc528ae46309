package create_space

import (
	"context"

	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

type SpaceService interface {
	CreateSpace(ctx context.Context, req *models.CreateSpaceRequest) (*models.SpaceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_space

import (
	"context"

	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

type SpaceService interface {
	GetSpace(ctx context.Context, id int64) (*models.SpaceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

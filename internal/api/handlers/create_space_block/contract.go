package create_space_block

import (
	"context"

	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

type SpaceService interface {
	CreateBlock(ctx context.Context, id int64, req *models.CreateBlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

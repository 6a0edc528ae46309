package update_space_schedule

import (
	"context"

	"github.com/condoflow/booking-service/internal/service/spaces/models"
)

type SpaceService interface {
	ReplaceSchedule(ctx context.Context, id int64, req *models.ReplaceScheduleRequest) (*models.SpaceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

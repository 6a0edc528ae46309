package complete_reservation

import (
	"context"

	"github.com/condoflow/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	Complete(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

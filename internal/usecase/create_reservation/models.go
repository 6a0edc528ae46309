package create_reservation

import (
	"time"

	"github.com/condoflow/booking-service/internal/domain"
)

// Request carries a booking request into admission.
type Request struct {
	SpaceID        int64
	UnitID         int64
	ResidentID     int64
	StartDatetime  time.Time
	EndDatetime    time.Time
	ExpectedGuests int
	Title          *string
	Notes          *string
}

// Response is the created reservation.
type Response struct {
	ID             int64
	SpaceID        int64
	UnitID         int64
	ResidentID     int64
	Title          *string
	StartDatetime  time.Time
	EndDatetime    time.Time
	ExpectedGuests int
	Notes          *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:             res.ID,
		SpaceID:        res.SpaceID,
		UnitID:         res.UnitID,
		ResidentID:     res.ResidentID,
		Title:          res.Title,
		StartDatetime:  res.StartDatetime,
		EndDatetime:    res.EndDatetime,
		ExpectedGuests: res.ExpectedGuests,
		Notes:          res.Notes,
		Status:         string(res.Status),
		CreatedAt:      res.CreatedAt,
		UpdatedAt:      res.UpdatedAt,
	}
}

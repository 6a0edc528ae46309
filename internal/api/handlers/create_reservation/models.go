package create_reservation

import (
	"time"

	createReservation "github.com/condoflow/booking-service/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpaceID        int64   `json:"spaceId"`
	UnitID         int64   `json:"unitId"`
	StartDatetime  string  `json:"startDatetime"` // RFC 3339
	EndDatetime    string  `json:"endDatetime"`   // RFC 3339
	ExpectedGuests int     `json:"expectedGuests"`
	Title          *string `json:"title,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64   `json:"id"`
	SpaceID        int64   `json:"spaceId"`
	UnitID         int64   `json:"unitId"`
	ResidentID     int64   `json:"residentId"`
	Title          *string `json:"title,omitempty"`
	StartDatetime  string  `json:"startDatetime"`
	EndDatetime    string  `json:"endDatetime"`
	ExpectedGuests int     `json:"expectedGuests"`
	Notes          *string `json:"notes,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest parses the datetimes and builds the use case request.
// residentID comes from the authenticated context, not the body.
func (r *CreateReservationRequest) ToUseCaseRequest(residentID int64) (*createReservation.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartDatetime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.EndDatetime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		SpaceID:        r.SpaceID,
		UnitID:         r.UnitID,
		ResidentID:     residentID,
		StartDatetime:  start,
		EndDatetime:    end,
		ExpectedGuests: r.ExpectedGuests,
		Title:          r.Title,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		SpaceID:        resp.SpaceID,
		UnitID:         resp.UnitID,
		ResidentID:     resp.ResidentID,
		Title:          resp.Title,
		StartDatetime:  resp.StartDatetime.Format(time.RFC3339),
		EndDatetime:    resp.EndDatetime.Format(time.RFC3339),
		ExpectedGuests: resp.ExpectedGuests,
		Notes:          resp.Notes,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}

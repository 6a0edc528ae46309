package get_available_slots

import (
	"time"

	"github.com/condoflow/booking-service/internal/domain"
	getAvailableSlots "github.com/condoflow/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse is one sub-interval of the day's layout.
type SlotResponse struct {
	Start     string `json:"start"` // RFC 3339
	End       string `json:"end"`   // RFC 3339
	Available bool   `json:"available"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	SpaceID int64          `json:"spaceId"`
	Date    string         `json:"date"` // "2026-08-31"
	Slots   []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		SpaceID: resp.SpaceID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Start:     s.Start.Format(time.RFC3339),
			End:       s.End.Format(time.RFC3339),
			Available: s.Available,
		})
	}
	return out
}

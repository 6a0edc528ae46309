package models

import (
	"time"

	"github.com/condoflow/booking-service/internal/domain"
)

// Request models

// GetUnitReservationsRequest asks for a unit's reservation history.
type GetUnitReservationsRequest struct {
	UnitID int64   `json:"unitId"`
	Status *string `json:"status,omitempty"`
}

// GetSpaceReservationsRequest asks for a space's reservations with
// optional filtering. By default only live reservations are returned;
// IncludeTerminal adds rejected, cancelled, completed and no-show ones.
type GetSpaceReservationsRequest struct {
	SpaceID         int64      `json:"spaceId"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeTerminal bool       `json:"includeTerminal,omitempty"`
}

// ToDomainFilter converts the request into the domain filter.
func (r *GetSpaceReservationsRequest) ToDomainFilter() (domain.SpaceReservationsFilter, error) {
	filter := domain.SpaceReservationsFilter{
		SpaceID:         r.SpaceID,
		From:            r.From,
		To:              r.To,
		IncludeTerminal: r.IncludeTerminal,
	}

	if r.Status != nil {
		status, err := domain.ParseReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// RejectReservationRequest declines a pending reservation.
type RejectReservationRequest struct {
	AdminID int64  `json:"adminId"`
	Reason  string `json:"reason"`
}

// CancelReservationRequest releases a reserved slot.
type CancelReservationRequest struct {
	ActorID int64   `json:"actorId"`
	Reason  *string `json:"reason,omitempty"`
}

// Response models

// ReservationResponse is a reservation rendered for the API.
type ReservationResponse struct {
	ID             int64   `json:"id"`
	SpaceID        int64   `json:"spaceId"`
	UnitID         int64   `json:"unitId"`
	ResidentID     int64   `json:"residentId"`
	Title          *string `json:"title,omitempty"`
	StartDatetime  string  `json:"startDatetime"` // ISO 8601
	EndDatetime    string  `json:"endDatetime"`   // ISO 8601
	ExpectedGuests int     `json:"expectedGuests"`
	Notes          *string `json:"notes,omitempty"`
	Status         string  `json:"status"`

	ApprovedBy *int64  `json:"approvedBy,omitempty"`
	ApprovedAt *string `json:"approvedAt,omitempty"`

	RejectedBy      *int64  `json:"rejectedBy,omitempty"`
	RejectedAt      *string `json:"rejectedAt,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`

	CancelledBy        *int64  `json:"cancelledBy,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	CheckedInAt *string `json:"checkedInAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	NoShowAt    *string `json:"noShowAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse is a list of reservations.
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Conversion helpers

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// FromDomainReservation converts the domain model into a DTO.
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:             r.ID,
		SpaceID:        r.SpaceID,
		UnitID:         r.UnitID,
		ResidentID:     r.ResidentID,
		Title:          r.Title,
		StartDatetime:  r.StartDatetime.Format(time.RFC3339),
		EndDatetime:    r.EndDatetime.Format(time.RFC3339),
		ExpectedGuests: r.ExpectedGuests,
		Notes:          r.Notes,
		Status:         string(r.Status),

		ApprovedBy: r.ApprovedBy,
		ApprovedAt: formatTimePtr(r.ApprovedAt),

		RejectedBy:      r.RejectedBy,
		RejectedAt:      formatTimePtr(r.RejectedAt),
		RejectionReason: r.RejectionReason,

		CancelledBy:        r.CancelledBy,
		CancelledAt:        formatTimePtr(r.CancelledAt),
		CancellationReason: r.CancellationReason,

		CheckedInAt: formatTimePtr(r.CheckedInAt),
		CompletedAt: formatTimePtr(r.CompletedAt),
		NoShowAt:    formatTimePtr(r.NoShowAt),

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainReservationList converts a list of domain models into a DTO.
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		if dto := FromDomainReservation(r); dto != nil {
			resp.Reservations = append(resp.Reservations, *dto)
		}
	}
	return resp
}

package models

import (
	"time"

	"github.com/condoflow/booking-service/internal/domain"
	"github.com/condoflow/booking-service/pkg/types"
)

// Request models

// CreateSpaceRequest registers a new bookable space.
type CreateSpaceRequest struct {
	Name                      string `json:"name"`
	Type                      string `json:"type"`
	Status                    string `json:"status"`
	Capacity                  int    `json:"capacity"`
	RequiresApproval          bool   `json:"requiresApproval"`
	MaxDurationHours          *int   `json:"maxDurationHours,omitempty"`
	MaxAdvanceDays            int    `json:"maxAdvanceDays"`
	MinAdvanceHours           int    `json:"minAdvanceHours"`
	CancellationDeadlineHours int    `json:"cancellationDeadlineHours"`
}

// UpdateSpaceRequest mutates a space's administrative fields. Nil
// fields are left unchanged.
type UpdateSpaceRequest struct {
	Name                      *string `json:"name,omitempty"`
	Type                      *string `json:"type,omitempty"`
	Status                    *string `json:"status,omitempty"`
	Capacity                  *int    `json:"capacity,omitempty"`
	RequiresApproval          *bool   `json:"requiresApproval,omitempty"`
	MaxDurationHours          *int    `json:"maxDurationHours,omitempty"`
	MaxAdvanceDays            *int    `json:"maxAdvanceDays,omitempty"`
	MinAdvanceHours           *int    `json:"minAdvanceHours,omitempty"`
	CancellationDeadlineHours *int    `json:"cancellationDeadlineHours,omitempty"`
}

// WindowRequest is one weekly window in a schedule submission.
type WindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
}

// ReplaceScheduleRequest swaps a space's full weekly schedule.
type ReplaceScheduleRequest struct {
	Windows []WindowRequest `json:"windows"`
}

// ToDomainWindows converts the submission into domain windows.
func (r *ReplaceScheduleRequest) ToDomainWindows(spaceID int64) []*domain.SpaceAvailability {
	windows := make([]*domain.SpaceAvailability, 0, len(r.Windows))
	for _, w := range r.Windows {
		windows = append(windows, &domain.SpaceAvailability{
			SpaceID:   spaceID,
			DayOfWeek: w.DayOfWeek,
			StartTime: types.TimeString(w.StartTime),
			EndTime:   types.TimeString(w.EndTime),
		})
	}
	return windows
}

// CreateBlockRequest closes a space for a concrete period.
type CreateBlockRequest struct {
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
	Reason        string    `json:"reason"`
	CreatedBy     int64     `json:"createdBy"`
	Notes         *string   `json:"notes,omitempty"`
}

// Response models

// SpaceResponse is a space with its weekly schedule and rules.
type SpaceResponse struct {
	ID                        int64            `json:"id"`
	Name                      string           `json:"name"`
	Type                      string           `json:"type"`
	Status                    string           `json:"status"`
	Capacity                  int              `json:"capacity"`
	RequiresApproval          bool             `json:"requiresApproval"`
	MaxDurationHours          *int             `json:"maxDurationHours,omitempty"`
	MaxAdvanceDays            int              `json:"maxAdvanceDays"`
	MinAdvanceHours           int              `json:"minAdvanceHours"`
	CancellationDeadlineHours int              `json:"cancellationDeadlineHours"`
	Windows                   []WindowResponse `json:"windows"`
	Rules                     []RuleResponse   `json:"rules"`
	CreatedAt                 time.Time        `json:"createdAt"`
	UpdatedAt                 time.Time        `json:"updatedAt"`
}

// WindowResponse is one weekly window.
type WindowResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// RuleResponse is one informational space rule.
type RuleResponse struct {
	ID        int64  `json:"id"`
	RuleKey   string `json:"ruleKey"`
	RuleValue string `json:"ruleValue"`
}

// BlockResponse is a created closure.
type BlockResponse struct {
	ID            int64     `json:"id"`
	SpaceID       int64     `json:"spaceId"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
	Reason        string    `json:"reason"`
	CreatedBy     int64     `json:"createdBy"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Conversion helpers

// FromDomainSpace assembles the space DTO from its parts.
func FromDomainSpace(sp *domain.Space, windows []*domain.SpaceAvailability, rules []*domain.SpaceRule) *SpaceResponse {
	if sp == nil {
		return nil
	}

	resp := &SpaceResponse{
		ID:                        sp.ID,
		Name:                      sp.Name,
		Type:                      sp.Type,
		Status:                    string(sp.Status),
		Capacity:                  sp.Capacity,
		RequiresApproval:          sp.RequiresApproval,
		MaxDurationHours:          sp.MaxDurationHours,
		MaxAdvanceDays:            sp.MaxAdvanceDays,
		MinAdvanceHours:           sp.MinAdvanceHours,
		CancellationDeadlineHours: sp.CancellationDeadlineHours,
		Windows:                   make([]WindowResponse, 0, len(windows)),
		Rules:                     make([]RuleResponse, 0, len(rules)),
		CreatedAt:                 sp.CreatedAt,
		UpdatedAt:                 sp.UpdatedAt,
	}

	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			ID:        w.ID,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}
	for _, r := range rules {
		resp.Rules = append(resp.Rules, RuleResponse{
			ID:        r.ID,
			RuleKey:   r.RuleKey,
			RuleValue: r.RuleValue,
		})
	}

	return resp
}

// FromDomainBlock converts a block into a DTO.
func FromDomainBlock(b *domain.SpaceBlock) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:            b.ID,
		SpaceID:       b.SpaceID,
		StartDatetime: b.StartDatetime,
		EndDatetime:   b.EndDatetime,
		Reason:        b.Reason,
		CreatedBy:     b.CreatedBy,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
	}
}

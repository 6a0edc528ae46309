package domain

import "time"

// SpaceStatus represents the administrative status of a space.
type SpaceStatus string

const (
	SpaceStatusActive      SpaceStatus = "active"
	SpaceStatusInactive    SpaceStatus = "inactive"
	SpaceStatusMaintenance SpaceStatus = "maintenance"
)

// Space is a bookable shared amenity (party hall, pool, court).
// Spaces are administrative entities: the booking engine reads them but
// never mutates them.
type Space struct {
	ID     int64
	Name   string
	Type   string
	Status SpaceStatus

	Capacity         int
	RequiresApproval bool

	// MaxDurationHours caps a single reservation's length; nil = no cap.
	MaxDurationHours *int
	// MaxAdvanceDays limits how far ahead a reservation may start; 0 = unlimited.
	MaxAdvanceDays int
	// MinAdvanceHours is the minimum notice before a reservation starts.
	MinAdvanceHours int
	// CancellationDeadlineHours classifies cancellations inside this
	// window before the start as late.
	CancellationDeadlineHours int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the space accepts new reservations.
func (s *Space) IsActive() bool {
	return s.Status == SpaceStatusActive
}

// HasDurationLimit returns true if reservations have a maximum length.
func (s *Space) HasDurationLimit() bool {
	return s.MaxDurationHours != nil && *s.MaxDurationHours > 0
}

// HasAdvanceLimit returns true if there is a limit on how far in advance
// reservations can be made.
func (s *Space) HasAdvanceLimit() bool {
	return s.MaxAdvanceDays > 0
}

// SpaceRule is an auxiliary key/value constraint attached to a space,
// e.g. "max_noise_level" or "deposit_required". Rules are informational;
// the booking engine does not enforce them.
type SpaceRule struct {
	ID        int64
	SpaceID   int64
	RuleKey   string
	RuleValue string
	CreatedAt time.Time
}

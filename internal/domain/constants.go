package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinCapacity                 = 1
	MaxCapacity                 = 1000
	MinAdvanceHoursLimit        = 0
	MaxAdvanceDaysLimit         = 365 // 1 year
	MaxDurationHoursLimit       = 24
	MaxNotesLength              = 500
	MaxTitleLength              = 150
	MaxCancellationReasonLength = 500
	MaxRejectionReasonLength    = 500
)

// BlockingStatuses are the reservation statuses that keep a time slot
// occupied. Used when computing availability and checking conflicts.
var BlockingStatuses = []ReservationStatus{
	StatusPendingApproval,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses are permanent history; reservations in these states
// never block a slot and never transition again.
var TerminalStatuses = []ReservationStatus{
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

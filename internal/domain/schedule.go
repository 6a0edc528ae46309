package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/condoflow/booking-service/pkg/types"
)

var (
	// ErrInvalidDayOfWeek is returned for day values outside 0..6.
	ErrInvalidDayOfWeek = errors.New("domain: day of week must be in [0..6]")

	// ErrInvalidWindow is returned when a weekly window's end time is not
	// after its start time.
	ErrInvalidWindow = errors.New("domain: window end time must be after start time")

	// ErrWindowOverlap is returned when two weekly windows of the same
	// space overlap on the same day.
	ErrWindowOverlap = errors.New("domain: availability windows overlap")
)

// SpaceAvailability is one recurring weekly open window for a space.
// DayOfWeek follows time.Weekday: 0 = Sunday .. 6 = Saturday.
type SpaceAvailability struct {
	ID        int64
	SpaceID   int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
}

// Validate checks the day and the HH:MM window.
func (a *SpaceAvailability) Validate() error {
	if a.DayOfWeek < 0 || a.DayOfWeek > 6 {
		return fmt.Errorf("%w: got %d", ErrInvalidDayOfWeek, a.DayOfWeek)
	}
	if err := a.StartTime.Validate(); err != nil {
		return err
	}
	if err := a.EndTime.Validate(); err != nil {
		return err
	}
	if !a.StartTime.IsBefore(a.EndTime) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, a.StartTime, a.EndTime)
	}
	return nil
}

// OverlapsWindow reports whether two windows of the same day intersect.
// Windows on different days never overlap.
func (a *SpaceAvailability) OverlapsWindow(other *SpaceAvailability) bool {
	if a.DayOfWeek != other.DayOfWeek {
		return false
	}
	return a.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(a.EndTime)
}

// AppliesTo reports whether the window is open on the given date's weekday.
func (a *SpaceAvailability) AppliesTo(date time.Time) bool {
	return int(date.Weekday()) == a.DayOfWeek
}

// WindowOn anchors the weekly window to a concrete date, yielding the
// candidate open interval [date+StartTime, date+EndTime).
func (a *SpaceAvailability) WindowOn(date time.Time) (TimeRange, error) {
	start, err := a.StartTime.OnDate(date)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := a.EndTime.OnDate(date)
	if err != nil {
		return TimeRange{}, err
	}
	return NewTimeRange(start, end)
}

// ValidateWindows validates a full weekly schedule, including pairwise
// same-day overlap between windows.
func ValidateWindows(windows []*SpaceAvailability) error {
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if windows[i].OverlapsWindow(windows[j]) {
				return fmt.Errorf("%w: day=%d %s-%s and %s-%s",
					ErrWindowOverlap, windows[i].DayOfWeek,
					windows[i].StartTime, windows[i].EndTime,
					windows[j].StartTime, windows[j].EndTime)
			}
		}
	}
	return nil
}

// SpaceBlock is an ad-hoc closed interval for a space, e.g. maintenance.
// A block is a hard closure regardless of the weekly windows.
type SpaceBlock struct {
	ID            int64
	SpaceID       int64
	StartDatetime time.Time
	EndDatetime   time.Time
	Reason        string
	CreatedBy     int64
	Notes         *string
	CreatedAt     time.Time
}

// Validate checks the closed interval.
func (b *SpaceBlock) Validate() error {
	if !b.EndDatetime.After(b.StartDatetime) {
		return fmt.Errorf("%w: block start=%s end=%s", ErrInvalidDateRange,
			b.StartDatetime.Format(time.RFC3339), b.EndDatetime.Format(time.RFC3339))
	}
	return nil
}

// Interval returns the closed period as a TimeRange.
func (b *SpaceBlock) Interval() TimeRange {
	return TimeRange{Start: b.StartDatetime, End: b.EndDatetime}
}

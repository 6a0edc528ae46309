package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateRange is returned when an interval's end is not after its start.
var ErrInvalidDateRange = errors.New("domain: end must be strictly after start")

// TimeRange is a half-open interval [Start, End). All interval algebra in
// the booking engine runs on this type, so the boundary convention lives
// in exactly one place: two ranges that merely touch do not overlap.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a validated half-open interval.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open intervals intersect.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Contains reports whether other lies fully inside t.
func (t TimeRange) Contains(other TimeRange) bool {
	return !other.Start.Before(t.Start) && !other.End.After(t.End)
}

// Clip returns the intersection of t with bounds. The second return value
// is false when the intervals do not overlap.
func (t TimeRange) Clip(bounds TimeRange) (TimeRange, bool) {
	if !t.Overlaps(bounds) {
		return TimeRange{}, false
	}
	clipped := t
	if clipped.Start.Before(bounds.Start) {
		clipped.Start = bounds.Start
	}
	if clipped.End.After(bounds.End) {
		clipped.End = bounds.End
	}
	return clipped, true
}

// Duration returns the length of the interval.
func (t TimeRange) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

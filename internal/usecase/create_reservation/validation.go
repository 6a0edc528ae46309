package create_reservation

import (
	"fmt"
	"sort"
	"time"

	"github.com/condoflow/booking-service/internal/domain"
)

// validateRequest checks the request's shape before any I/O.
func validateRequest(req *Request) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}
	if req.ResidentID <= 0 {
		return fmt.Errorf("%w: residentID must be positive", ErrInvalidInput)
	}
	if req.StartDatetime.IsZero() || req.EndDatetime.IsZero() {
		return fmt.Errorf("%w: startDatetime and endDatetime are required", ErrInvalidInput)
	}
	if req.ExpectedGuests < 0 {
		return fmt.Errorf("%w: expectedGuests must not be negative", ErrInvalidInput)
	}
	if req.Title != nil && len(*req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// validateAdvanceWindow enforces the space's notice limits: the start
// must be at least MinAdvanceHours away and, when an advance limit is
// set, no further out than MaxAdvanceDays.
func validateAdvanceWindow(space *domain.Space, start, now time.Time) error {
	notice := time.Duration(space.MinAdvanceHours) * time.Hour
	if start.Sub(now) < notice {
		return fmt.Errorf("%w: must book at least %d hours in advance",
			ErrAdvanceWindowViolation, space.MinAdvanceHours)
	}

	if space.HasAdvanceLimit() {
		horizon := now.AddDate(0, 0, space.MaxAdvanceDays)
		if start.After(horizon) {
			return fmt.Errorf("%w: can only book %d days in advance",
				ErrAdvanceWindowViolation, space.MaxAdvanceDays)
		}
	}
	return nil
}

// validateDuration enforces the space's maximum reservation length.
func validateDuration(space *domain.Space, interval domain.TimeRange) error {
	if !space.HasDurationLimit() {
		return nil
	}
	limit := time.Duration(*space.MaxDurationHours) * time.Hour
	if interval.Duration() > limit {
		return fmt.Errorf("%w: maximum is %d hours", ErrDurationExceeded, *space.MaxDurationHours)
	}
	return nil
}

// coveredByWindows reports whether the interval lies fully inside the
// space's open windows. Windows are anchored to every day the interval
// touches and touching windows (08-12, 12-18) are merged first, so an
// interval spanning a seam still counts as covered.
func coveredByWindows(interval domain.TimeRange, windows []*domain.SpaceAvailability) (bool, error) {
	var open []domain.TimeRange

	day := time.Date(interval.Start.Year(), interval.Start.Month(), interval.Start.Day(),
		0, 0, 0, 0, interval.Start.Location())
	for !day.After(interval.End) {
		for _, w := range windows {
			if !w.AppliesTo(day) {
				continue
			}
			anchored, err := w.WindowOn(day)
			if err != nil {
				return false, err
			}
			open = append(open, anchored)
		}
		day = day.AddDate(0, 0, 1)
	}
	if len(open) == 0 {
		return false, nil
	}

	sort.Slice(open, func(i, j int) bool { return open[i].Start.Before(open[j].Start) })

	merged := []domain.TimeRange{open[0]}
	for _, w := range open[1:] {
		last := &merged[len(merged)-1]
		if !w.Start.After(last.End) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}

	for _, m := range merged {
		if m.Contains(interval) {
			return true, nil
		}
	}
	return false, nil
}

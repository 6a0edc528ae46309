package get_available_slots

import (
	"sort"
	"time"

	"github.com/condoflow/booking-service/internal/domain"
)

// buildDaySlots computes the slot layout for one date:
//
//  1. every weekly window matching the date's weekday yields a candidate
//     open interval;
//  2. blocks and slot-occupying reservations overlapping a candidate are
//     clipped to it and recorded as occupied;
//  3. the candidate is cut at every occupied boundary; each resulting
//     sub-interval is reported available iff nothing occupies it.
//
// A space with no windows on that weekday yields an empty layout (fully
// closed day). Output is ordered by start time.
func buildDaySlots(
	windows []*domain.SpaceAvailability,
	blocks []*domain.SpaceBlock,
	reservations []*domain.Reservation,
	date time.Time,
) ([]Slot, error) {
	var candidates []domain.TimeRange
	for _, w := range windows {
		if !w.AppliesTo(date) {
			continue
		}
		window, err := w.WindowOn(date)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, window)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Start.Before(candidates[j].Start)
	})

	slots := make([]Slot, 0)
	for _, window := range candidates {
		occupied := collectOccupied(window, blocks, reservations)
		slots = append(slots, cutWindow(window, occupied)...)
	}
	return slots, nil
}

// collectOccupied clips every overlapping block and reservation interval
// to the window.
func collectOccupied(
	window domain.TimeRange,
	blocks []*domain.SpaceBlock,
	reservations []*domain.Reservation,
) []domain.TimeRange {
	var occupied []domain.TimeRange

	for _, b := range blocks {
		if clipped, ok := b.Interval().Clip(window); ok {
			occupied = append(occupied, clipped)
		}
	}
	for _, r := range reservations {
		if !r.IsBlocking() {
			continue
		}
		if clipped, ok := r.Interval().Clip(window); ok {
			occupied = append(occupied, clipped)
		}
	}
	return occupied
}

// cutWindow slices the window at every occupied boundary and marks each
// resulting sub-interval. Sub-intervals are never merged, even when two
// adjacent ones share the same availability value.
func cutWindow(window domain.TimeRange, occupied []domain.TimeRange) []Slot {
	boundaries := []time.Time{window.Start, window.End}
	for _, occ := range occupied {
		boundaries = append(boundaries, occ.Start, occ.End)
	}

	sort.Slice(boundaries, func(i, j int) bool {
		return boundaries[i].Before(boundaries[j])
	})
	boundaries = dedupeTimes(boundaries)

	slots := make([]Slot, 0, len(boundaries)-1)
	for i := 0; i+1 < len(boundaries); i++ {
		segment := domain.TimeRange{Start: boundaries[i], End: boundaries[i+1]}
		if !segment.End.After(segment.Start) {
			continue
		}
		slots = append(slots, Slot{
			Start:     segment.Start,
			End:       segment.End,
			Available: !isOccupied(segment, occupied),
		})
	}
	return slots
}

// isOccupied reports whether any occupied interval covers the segment.
// Segments are cut at every boundary, so overlap implies full coverage.
func isOccupied(segment domain.TimeRange, occupied []domain.TimeRange) bool {
	for _, occ := range occupied {
		if occ.Overlaps(segment) {
			return true
		}
	}
	return false
}

func dedupeTimes(sorted []time.Time) []time.Time {
	deduped := sorted[:0]
	for i, t := range sorted {
		if i == 0 || !t.Equal(sorted[i-1]) {
			deduped = append(deduped, t)
		}
	}
	return deduped
}

// dayRange returns the half-open [00:00, next day 00:00) interval of the
// date, in the date's location.
func dayRange(date time.Time) domain.TimeRange {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return domain.TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}

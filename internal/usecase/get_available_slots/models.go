package get_available_slots

import "time"

// Request asks for a space's slot layout on one date.
type Request struct {
	SpaceID int64     // target space
	Date    time.Time // date in the community's local timezone (time part ignored)
}

// Response is the ordered slot sequence for the requested date.
type Response struct {
	SpaceID int64     `json:"space_id"`
	Date    time.Time `json:"date"`
	Slots   []Slot    `json:"slots"`
}

// Slot is one sub-interval of an open window, cut at every block and
// reservation boundary. Adjacent slots with the same availability are
// not merged, so callers always see the finest-grained layout.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

package governance

import "time"

// UnitBlockStatus is the governance service's answer about a unit's
// standing. ActiveUntil is informational and may be empty for
// indefinite blocks.
type UnitBlockStatus struct {
	UnitID      int64      `json:"unit_id"`
	Blocked     bool       `json:"blocked"`
	Reason      string     `json:"reason,omitempty"`
	ActiveUntil *time.Time `json:"active_until,omitempty"`
}

// ErrorResponse is the governance service's error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

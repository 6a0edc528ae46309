package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/condoflow/booking-service/internal/domain"
)

func TestCancellationPolicy_IsLate(t *testing.T) {
	var policy domain.CancellationPolicy

	start := time.Date(2026, 9, 14, 18, 0, 0, 0, time.UTC)
	r := &domain.Reservation{StartDatetime: start}

	tests := []struct {
		name          string
		deadlineHours int
		now           time.Time
		want          bool
	}{
		{
			name:          "well before the deadline",
			deadlineHours: 48,
			now:           start.Add(-72 * time.Hour),
			want:          false,
		},
		{
			name:          "inside the deadline",
			deadlineHours: 48,
			now:           start.Add(-24 * time.Hour),
			want:          true,
		},
		{
			name:          "exactly at the deadline is on time",
			deadlineHours: 48,
			now:           start.Add(-48 * time.Hour),
			want:          false,
		},
		{
			name:          "one minute inside the deadline",
			deadlineHours: 48,
			now:           start.Add(-48*time.Hour + time.Minute),
			want:          true,
		},
		{
			name:          "after the start is late",
			deadlineHours: 48,
			now:           start.Add(time.Hour),
			want:          true,
		},
		{
			name:          "zero deadline disables the classification",
			deadlineHours: 0,
			now:           start.Add(-time.Minute),
			want:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.IsLate(r, tt.deadlineHours, tt.now))
		})
	}
}

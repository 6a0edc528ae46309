package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoflow/booking-service/internal/domain"
)

func mustRange(t *testing.T, start, end time.Time) domain.TimeRange {
	t.Helper()
	r, err := domain.NewTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func at(hour int) time.Time {
	return time.Date(2026, 9, 14, hour, 0, 0, 0, time.UTC)
}

func TestNewTimeRange_RejectsNonPositiveDuration(t *testing.T) {
	_, err := domain.NewTimeRange(at(12), at(12))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = domain.NewTimeRange(at(14), at(12))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.TimeRange
		want bool
	}{
		{
			name: "touching intervals do not overlap",
			a:    mustRange(t, at(10), at(12)),
			b:    mustRange(t, at(12), at(14)),
			want: false,
		},
		{
			name: "one minute of overlap counts",
			a:    mustRange(t, at(10), at(12).Add(time.Minute)),
			b:    mustRange(t, at(12), at(14)),
			want: true,
		},
		{
			name: "containment overlaps",
			a:    mustRange(t, at(10), at(18)),
			b:    mustRange(t, at(12), at(14)),
			want: true,
		},
		{
			name: "identical intervals overlap",
			a:    mustRange(t, at(10), at(12)),
			b:    mustRange(t, at(10), at(12)),
			want: true,
		},
		{
			name: "disjoint intervals do not overlap",
			a:    mustRange(t, at(8), at(9)),
			b:    mustRange(t, at(12), at(14)),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	outer := mustRange(t, at(8), at(18))

	assert.True(t, outer.Contains(mustRange(t, at(8), at(18))))
	assert.True(t, outer.Contains(mustRange(t, at(10), at(12))))
	assert.False(t, outer.Contains(mustRange(t, at(7), at(9))))
	assert.False(t, outer.Contains(mustRange(t, at(17), at(19))))
}

func TestTimeRange_Clip(t *testing.T) {
	bounds := mustRange(t, at(9), at(17))

	clipped, ok := mustRange(t, at(8), at(12)).Clip(bounds)
	require.True(t, ok)
	assert.Equal(t, at(9), clipped.Start)
	assert.Equal(t, at(12), clipped.End)

	clipped, ok = mustRange(t, at(16), at(20)).Clip(bounds)
	require.True(t, ok)
	assert.Equal(t, at(16), clipped.Start)
	assert.Equal(t, at(17), clipped.End)

	_, ok = mustRange(t, at(17), at(19)).Clip(bounds)
	assert.False(t, ok, "touching the bound is not an overlap")
}

func TestTimeRange_Duration(t *testing.T) {
	assert.Equal(t, 4*time.Hour, mustRange(t, at(10), at(14)).Duration())
}

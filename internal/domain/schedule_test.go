package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoflow/booking-service/internal/domain"
	"github.com/condoflow/booking-service/pkg/types"
)

func window(day int, start, end string) *domain.SpaceAvailability {
	return &domain.SpaceAvailability{
		SpaceID:   7,
		DayOfWeek: day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestSpaceAvailability_Validate(t *testing.T) {
	assert.NoError(t, window(1, "08:00", "12:00").Validate())

	assert.ErrorIs(t, window(7, "08:00", "12:00").Validate(), domain.ErrInvalidDayOfWeek)
	assert.ErrorIs(t, window(-1, "08:00", "12:00").Validate(), domain.ErrInvalidDayOfWeek)
	assert.ErrorIs(t, window(1, "12:00", "12:00").Validate(), domain.ErrInvalidWindow)
	assert.ErrorIs(t, window(1, "14:00", "12:00").Validate(), domain.ErrInvalidWindow)
	assert.Error(t, window(1, "25:00", "26:00").Validate())
}

func TestSpaceAvailability_OverlapsWindow(t *testing.T) {
	a := window(1, "08:00", "12:00")

	assert.False(t, a.OverlapsWindow(window(1, "12:00", "18:00")), "touching windows do not overlap")
	assert.True(t, a.OverlapsWindow(window(1, "11:00", "13:00")))
	assert.False(t, a.OverlapsWindow(window(2, "08:00", "12:00")), "different days never overlap")
}

func TestValidateWindows(t *testing.T) {
	assert.NoError(t, domain.ValidateWindows([]*domain.SpaceAvailability{
		window(1, "08:00", "12:00"),
		window(1, "12:00", "18:00"),
		window(2, "08:00", "18:00"),
	}))

	err := domain.ValidateWindows([]*domain.SpaceAvailability{
		window(1, "08:00", "12:00"),
		window(1, "11:00", "13:00"),
	})
	assert.ErrorIs(t, err, domain.ErrWindowOverlap)

	err = domain.ValidateWindows([]*domain.SpaceAvailability{
		window(1, "12:00", "08:00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

func TestSpaceAvailability_AppliesToAndWindowOn(t *testing.T) {
	// 2026-09-14 is a Monday.
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	w := window(1, "08:00", "12:00")

	assert.True(t, w.AppliesTo(monday))
	assert.False(t, w.AppliesTo(monday.AddDate(0, 0, 1)))

	anchored, err := w.WindowOn(monday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC), anchored.Start)
	assert.Equal(t, time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC), anchored.End)
}

func TestSpaceBlock_Validate(t *testing.T) {
	valid := &domain.SpaceBlock{
		SpaceID:       7,
		StartDatetime: time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC),
		EndDatetime:   time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
		Reason:        "maintenance",
	}
	assert.NoError(t, valid.Validate())

	inverted := &domain.SpaceBlock{
		StartDatetime: valid.EndDatetime,
		EndDatetime:   valid.StartDatetime,
	}
	assert.ErrorIs(t, inverted.Validate(), domain.ErrInvalidDateRange)
}

package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoflow/booking-service/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := types.NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, invalid := range []string{"9:30:00x", "24:00", "12:60", "noon", ""} {
		_, err := types.NewTimeStringFromString(invalid)
		assert.ErrorIs(t, err, types.ErrInvalidTimeString, "%q", invalid)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts := types.TimeString("09:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := types.TimeString("23:30")

	shifted, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("00:15"), shifted, "wraps past midnight")

	shifted, err = ts.AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("23:45"), shifted)
}

func TestTimeString_Comparisons(t *testing.T) {
	a := types.TimeString("08:00")
	b := types.TimeString("12:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestTimeString_OnDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)
	anchored, err := types.TimeString("18:30").OnDate(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 14, 18, 30, 0, 0, loc), anchored)
	assert.Equal(t, loc, anchored.Location())
}

func TestTimeString_Scan(t *testing.T) {
	var ts types.TimeString

	require.NoError(t, ts.Scan("08:15:00"))
	assert.Equal(t, types.TimeString("08:15"), ts, "seconds are trimmed")

	require.NoError(t, ts.Scan([]byte("09:45")))
	assert.Equal(t, types.TimeString("09:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 14, 10, 5, 0, 0, time.UTC)))
	assert.Equal(t, types.TimeString("10:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := types.TimeString("08:15").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:15", v)

	v, err = types.TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"00:00", 0},
		{"08:00", 8 * 60},
		{"13:30", 13*60 + 30},
		{"23:59", 23*60 + 59},
		{" 09:00 ", 9 * 60}, // surrounding whitespace is tolerated
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "24:00", "9:00:00", "noon", "12-30", "25:61"} {
		_, err := ParseTimeOfDay(in)
		assert.Error(t, err, in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "08:05", TimeOfDay(8*60+5).String())
	assert.Equal(t, "23:00", TimeOfDay(23*60).String())
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	for _, in := range []string{"00:00", "06:15", "12:00", "23:45"} {
		v, err := ParseTimeOfDay(in)
		require.NoError(t, err)
		assert.Equal(t, in, v.String())
	}
}

func TestTimeOfDayOn(t *testing.T) {
	at, err := TimeOfDay(14 * 60).On("2026-09-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 5, 14, 0, 0, 0, time.UTC), at)

	_, err = TimeOfDay(60).On("2026-13-40")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2026-02-28", FormatDate(d))

	for _, in := range []string{"", "2026-2-8", "28-02-2026", "2026-02-30"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekdaySet(t *testing.T) {
	ws, err := ParseWeekdaySet("MON,WED,FRI")
	require.NoError(t, err)
	assert.True(t, ws.Contains(time.Monday))
	assert.True(t, ws.Contains(time.Wednesday))
	assert.True(t, ws.Contains(time.Friday))
	assert.False(t, ws.Contains(time.Sunday))
	assert.False(t, ws.Contains(time.Saturday))
}

func TestParseWeekdaySetCaseAndSpacing(t *testing.T) {
	ws, err := ParseWeekdaySet(" sat , sun ")
	require.NoError(t, err)
	assert.Equal(t, WeekdaySetOf(time.Saturday, time.Sunday), ws)
}

func TestParseWeekdaySetRejectsUnknownDay(t *testing.T) {
	_, err := ParseWeekdaySet("MON,FOO")
	assert.Error(t, err)
}

func TestParseWeekdaySetEmpty(t *testing.T) {
	ws, err := ParseWeekdaySet("")
	require.NoError(t, err)
	assert.True(t, ws.Empty())
}

func TestWeekdaySetString(t *testing.T) {
	ws := WeekdaySetOf(time.Friday, time.Monday)
	// Sunday-first canonical order regardless of construction order.
	assert.Equal(t, "MON,FRI", ws.String())
	assert.Equal(t, "SUN,MON,TUE,WED,THU,FRI,SAT", EveryDay.String())
}

func TestWeekdaySetRoundTrip(t *testing.T) {
	in := "SUN,TUE,SAT"
	ws, err := ParseWeekdaySet(in)
	require.NoError(t, err)
	assert.Equal(t, in, ws.String())
}

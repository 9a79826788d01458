package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/court-reservation/internal/model"
)

func mustTime(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	v, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func testCourt(t *testing.T, open, close string) *model.Court {
	t.Helper()
	return &model.Court{
		ID:                1,
		Name:              "Center Court",
		OpenTime:          mustTime(t, open),
		CloseTime:         mustTime(t, close),
		DefaultPriceCents: 1500,
		IsActive:          true,
	}
}

func TestGenerateSlotsCoversOperatingHours(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	slots := GenerateSlots(court)
	require.Len(t, slots, 14)

	assert.Equal(t, mustTime(t, "08:00"), slots[0].Start)
	assert.Equal(t, mustTime(t, "09:00"), slots[0].End)
	assert.Equal(t, mustTime(t, "21:00"), slots[len(slots)-1].Start)
	assert.Equal(t, mustTime(t, "22:00"), slots[len(slots)-1].End)

	for i, w := range slots {
		assert.Equal(t, w.Start+SlotMinutes, w.End, "slot %d", i)
		if i > 0 {
			assert.Equal(t, slots[i-1].End, w.Start, "slot %d not contiguous", i)
		}
	}
}

func TestGenerateSlotsDropsPartialTrailingWindow(t *testing.T) {
	// 08:00-21:30 leaves half an hour after the 20:00-21:00 slot.
	court := testCourt(t, "08:00", "21:30")
	slots := GenerateSlots(court)
	require.NotEmpty(t, slots)
	last := slots[len(slots)-1]
	assert.Equal(t, mustTime(t, "20:00"), last.Start)
	assert.Equal(t, mustTime(t, "21:00"), last.End)
}

func TestGenerateSlotsShortDay(t *testing.T) {
	// Open less than one hour: no bookable slots at all.
	assert.Empty(t, GenerateSlots(testCourt(t, "08:00", "08:30")))
	// Exactly one hour: a single slot.
	assert.Len(t, GenerateSlots(testCourt(t, "08:00", "09:00")), 1)
}

func TestFindSlot(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")

	w, ok := FindSlot(court, mustTime(t, "10:00"))
	require.True(t, ok)
	assert.Equal(t, mustTime(t, "11:00"), w.End)

	// Off-grid start times are not bookable.
	_, ok = FindSlot(court, mustTime(t, "10:30"))
	assert.False(t, ok)

	// Outside operating hours.
	_, ok = FindSlot(court, mustTime(t, "07:00"))
	assert.False(t, ok)
	_, ok = FindSlot(court, mustTime(t, "22:00"))
	assert.False(t, ok)
}

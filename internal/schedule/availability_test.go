package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/court-reservation/internal/model"
)

func reservationAt(courtID uint64, date, start string, status model.ReservationStatus) model.Reservation {
	s, _ := model.ParseTimeOfDay(start)
	return model.Reservation{
		CourtID:   courtID,
		PlayDate:  date,
		StartTime: s,
		EndTime:   s + SlotMinutes,
		Status:    status,
	}
}

func TestResolveAvailabilityMatchesGeneratedSlots(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := ResolveAvailability(court, "2026-09-05", nil, now)
	require.NoError(t, err)
	require.Len(t, slots, len(GenerateSlots(court)))
	for _, s := range slots {
		assert.Equal(t, SlotFree, s.Status)
		assert.Equal(t, court.ID, s.CourtID)
		assert.Equal(t, "2026-09-05", s.Date)
	}
}

func TestResolveAvailabilityMarksBusySlots(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	existing := []model.Reservation{
		reservationAt(court.ID, "2026-09-05", "10:00", model.StatusConfirmed),
		reservationAt(court.ID, "2026-09-05", "14:00", model.StatusPending),
		// Terminal states never block a slot.
		reservationAt(court.ID, "2026-09-05", "16:00", model.StatusCancelled),
		reservationAt(court.ID, "2026-09-05", "17:00", model.StatusCompleted),
		// A different court's booking is irrelevant.
		reservationAt(court.ID+1, "2026-09-05", "11:00", model.StatusConfirmed),
		// Same court, different date.
		reservationAt(court.ID, "2026-09-06", "12:00", model.StatusConfirmed),
	}

	slots, err := ResolveAvailability(court, "2026-09-05", existing, now)
	require.NoError(t, err)

	byStart := map[string]SlotStatus{}
	for _, s := range slots {
		byStart[s.Start] = s.Status
	}
	assert.Equal(t, SlotBusy, byStart["10:00"])
	assert.Equal(t, SlotBusy, byStart["14:00"])
	assert.Equal(t, SlotFree, byStart["16:00"])
	assert.Equal(t, SlotFree, byStart["17:00"])
	assert.Equal(t, SlotFree, byStart["11:00"])
	assert.Equal(t, SlotFree, byStart["12:00"])
}

func TestResolveAvailabilityMarksPastSlotsToday(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	// 14:30 on the queried date: everything starting at or before now is PAST.
	now := time.Date(2026, 9, 5, 14, 30, 0, 0, time.UTC)

	slots, err := ResolveAvailability(court, "2026-09-05", nil, now)
	require.NoError(t, err)

	for _, s := range slots {
		if s.StartTime <= mustTime(t, "14:30") {
			assert.Equal(t, SlotPast, s.Status, s.Start)
		} else {
			assert.Equal(t, SlotFree, s.Status, s.Start)
		}
	}
}

func TestResolveAvailabilityPastBeatsBusy(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	now := time.Date(2026, 9, 5, 14, 30, 0, 0, time.UTC)
	existing := []model.Reservation{
		reservationAt(court.ID, "2026-09-05", "10:00", model.StatusConfirmed),
	}

	slots, err := ResolveAvailability(court, "2026-09-05", existing, now)
	require.NoError(t, err)

	for _, s := range slots {
		if s.Start == "10:00" {
			assert.Equal(t, SlotPast, s.Status)
		}
	}
}

func TestResolveAvailabilityFutureDateIgnoresClock(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	now := time.Date(2026, 9, 5, 23, 59, 0, 0, time.UTC)

	slots, err := ResolveAvailability(court, "2026-09-06", nil, now)
	require.NoError(t, err)
	for _, s := range slots {
		assert.Equal(t, SlotFree, s.Status)
	}
}

func TestResolveAvailabilityCarriesTierPrices(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	court.Tiers = []model.PriceTier{
		{StartTime: mustTime(t, "18:00"), EndTime: mustTime(t, "22:00"),
			PriceCents: 2500, Weekdays: model.EveryDay, IsActive: true},
	}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := ResolveAvailability(court, "2026-09-05", nil, now)
	require.NoError(t, err)
	for _, s := range slots {
		if s.StartTime >= mustTime(t, "18:00") {
			assert.Equal(t, uint32(2500), s.PriceCents, s.Start)
		} else {
			assert.Equal(t, court.DefaultPriceCents, s.PriceCents, s.Start)
		}
	}
}

func TestResolveAvailabilityRejectsBadDate(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	_, err := ResolveAvailability(court, "05-09-2026", nil, time.Now())
	assert.Error(t, err)
}

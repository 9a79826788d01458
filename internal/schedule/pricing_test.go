package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelora/court-reservation/internal/model"
)

func TestResolvePriceDefaultWhenNoTiers(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	got := ResolvePrice(court, mustTime(t, "10:00"), time.Tuesday)
	assert.Equal(t, court.DefaultPriceCents, got)
}

func TestResolvePriceFirstMatchingTierWins(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	court.Tiers = []model.PriceTier{
		// Evening premium, weekdays only.
		{StartTime: mustTime(t, "18:00"), EndTime: mustTime(t, "22:00"),
			PriceCents: 2500, Weekdays: model.WeekdaySetOf(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday), IsActive: true},
		// Broad all-day tier declared after; must lose on overlaps.
		{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "22:00"),
			PriceCents: 1800, Weekdays: model.EveryDay, IsActive: true},
	}

	assert.Equal(t, uint32(2500), ResolvePrice(court, mustTime(t, "19:00"), time.Wednesday))
	// Same hour on a weekend falls through to the second tier.
	assert.Equal(t, uint32(1800), ResolvePrice(court, mustTime(t, "19:00"), time.Saturday))
	// Morning hour never matches the evening tier.
	assert.Equal(t, uint32(1800), ResolvePrice(court, mustTime(t, "09:00"), time.Wednesday))
}

func TestResolvePriceTierBoundaries(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	court.Tiers = []model.PriceTier{
		{StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"),
			PriceCents: 2000, Weekdays: model.EveryDay, IsActive: true},
	}

	// [start, end): the start boundary is inside, the end boundary is not.
	assert.Equal(t, uint32(2000), ResolvePrice(court, mustTime(t, "10:00"), time.Monday))
	assert.Equal(t, uint32(2000), ResolvePrice(court, mustTime(t, "11:00"), time.Monday))
	assert.Equal(t, court.DefaultPriceCents, ResolvePrice(court, mustTime(t, "12:00"), time.Monday))
	assert.Equal(t, court.DefaultPriceCents, ResolvePrice(court, mustTime(t, "09:00"), time.Monday))
}

func TestResolvePriceSkipsInactiveTiers(t *testing.T) {
	court := testCourt(t, "08:00", "22:00")
	court.Tiers = []model.PriceTier{
		{StartTime: mustTime(t, "08:00"), EndTime: mustTime(t, "22:00"),
			PriceCents: 9900, Weekdays: model.EveryDay, IsActive: false},
	}
	assert.Equal(t, court.DefaultPriceCents, ResolvePrice(court, mustTime(t, "10:00"), time.Monday))
}

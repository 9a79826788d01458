package schedule

import (
	"time"

	"github.com/avelora/court-reservation/internal/model"
)

// ResolvePrice returns the hourly price in cents for a slot starting at the
// given time of day on the given weekday.  Tiers are evaluated in declared
// order and the first active tier whose [start, end) range contains the
// slot start and whose weekday set includes the weekday wins.  When no
// tier matches, the court's default price applies.  There are no error
// conditions: the result is always a usable price.
func ResolvePrice(court *model.Court, slotStart model.TimeOfDay, day time.Weekday) uint32 {
	for _, t := range court.Tiers {
		if !t.IsActive {
			continue
		}
		if slotStart < t.StartTime || slotStart >= t.EndTime {
			continue
		}
		if !t.Weekdays.Contains(day) {
			continue
		}
		return t.PriceCents
	}
	return court.DefaultPriceCents
}

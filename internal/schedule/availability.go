package schedule

import (
	"time"

	"github.com/avelora/court-reservation/internal/model"
)

// SlotStatus describes whether a computed slot can be selected.
type SlotStatus string

const (
	SlotFree SlotStatus = "FREE" // slot is open for booking
	SlotBusy SlotStatus = "BUSY" // an active reservation occupies the slot
	SlotPast SlotStatus = "PAST" // today's slot whose start has already passed
)

// TimeSlot is a computed, never persisted view of one bookable hour on one
// court and date, annotated with its resolved price and availability.
type TimeSlot struct {
	CourtID    uint64          `json:"court_id"`
	Date       string          `json:"date"`
	StartTime  model.TimeOfDay `json:"-"`
	EndTime    model.TimeOfDay `json:"-"`
	Start      string          `json:"start"`
	End        string          `json:"end"`
	PriceCents uint32          `json:"price_cents"`
	Status     SlotStatus      `json:"status"`
}

// ResolveAvailability combines the court's generated slots with the
// reservations already stored for that court and date.  A slot is BUSY
// when a PENDING or CONFIRMED reservation starts at the same time;
// cancelled and completed reservations never block.  When date is the
// current calendar date (in UTC), slots whose start is at or before now
// are marked PAST regardless of booking state.  Each remaining slot
// carries the price resolved for its start time and weekday.
//
// The caller supplies the existing reservations; this function performs
// no I/O.  If the read that produced them failed, the caller must surface
// that failure instead of passing an empty slice; an unknown calendar
// must never be presented as fully FREE.
func ResolveAvailability(court *model.Court, date string, existing []model.Reservation, now time.Time) ([]TimeSlot, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, err
	}

	busy := make(map[model.TimeOfDay]bool, len(existing))
	for _, r := range existing {
		if r.CourtID == court.ID && r.PlayDate == date && r.Status.Active() {
			busy[r.StartTime] = true
		}
	}

	now = now.UTC()
	today := model.FormatDate(now) == date
	nowMinute := model.TimeOfDay(now.Hour()*60 + now.Minute())

	windows := GenerateSlots(court)
	slots := make([]TimeSlot, 0, len(windows))
	for _, w := range windows {
		s := TimeSlot{
			CourtID:    court.ID,
			Date:       date,
			StartTime:  w.Start,
			EndTime:    w.End,
			Start:      w.Start.String(),
			End:        w.End.String(),
			PriceCents: ResolvePrice(court, w.Start, day.Weekday()),
			Status:     SlotFree,
		}
		switch {
		case today && w.Start <= nowMinute:
			s.Status = SlotPast
		case busy[w.Start]:
			s.Status = SlotBusy
		}
		slots = append(slots, s)
	}
	return slots, nil
}

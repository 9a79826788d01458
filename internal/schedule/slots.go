// Package schedule implements the slot-based reservation engine: slot
// generation from court operating hours, time-of-day price resolution,
// availability computation against existing reservations, the reservation
// state machine and the cancellation policy.  Every function in this
// package is pure (no I/O, no clocks other than the ones passed in), so
// the whole engine can be exercised from any number of concurrent request
// contexts without synchronization.
package schedule

import (
	"github.com/avelora/court-reservation/internal/model"
)

// SlotMinutes is the fixed booking granularity.  Every offered slot is
// exactly one hour long.
const SlotMinutes = 60

// SlotWindow is a candidate (start, end) pair produced by GenerateSlots.
// End is always Start + SlotMinutes.
type SlotWindow struct {
	Start model.TimeOfDay
	End   model.TimeOfDay
}

// GenerateSlots returns the ordered candidate slots for a court: consecutive
// one-hour windows starting at the opening time.  A trailing window whose
// end would exceed the closing time is dropped, so a court open less than
// one hour yields no slots.  The result depends only on the court's
// operating hours and is identical on every call.
func GenerateSlots(court *model.Court) []SlotWindow {
	var out []SlotWindow
	for start := court.OpenTime; start+SlotMinutes <= court.CloseTime; start += SlotMinutes {
		out = append(out, SlotWindow{Start: start, End: start + SlotMinutes})
	}
	return out
}

// FindSlot returns the generated window beginning at start, if the court
// offers one.  Reservation creation uses this to reject start times that
// do not line up with the court's slot grid.
func FindSlot(court *model.Court, start model.TimeOfDay) (SlotWindow, bool) {
	for _, w := range GenerateSlots(court) {
		if w.Start == start {
			return w, true
		}
	}
	return SlotWindow{}, false
}

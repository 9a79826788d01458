package model

import (
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a bitmask of the days of the week a price tier applies to.
// Bit n corresponds to time.Weekday(n), so Sunday is bit 0.  The wire form
// is a comma-separated list of three-letter day names ("MON,TUE,SAT"),
// decoded once at the store boundary.
type WeekdaySet uint8

// EveryDay contains all seven weekdays.
const EveryDay WeekdaySet = 0x7F

var weekdayNames = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// WeekdaySetOf builds a set from individual weekdays.
func WeekdaySetOf(days ...time.Weekday) WeekdaySet {
	var ws WeekdaySet
	for _, d := range days {
		ws |= 1 << uint(d)
	}
	return ws
}

// Contains reports whether the given weekday is in the set.
func (ws WeekdaySet) Contains(d time.Weekday) bool {
	return ws&(1<<uint(d)) != 0
}

// Empty reports whether no weekday is in the set.
func (ws WeekdaySet) Empty() bool { return ws&EveryDay == 0 }

// ParseWeekdaySet decodes the comma-separated wire form.  Unknown day names
// are rejected; an empty string yields an empty set.
func ParseWeekdaySet(s string) (WeekdaySet, error) {
	var ws WeekdaySet
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	for _, part := range strings.Split(s, ",") {
		name := strings.ToUpper(strings.TrimSpace(part))
		found := false
		for i, n := range weekdayNames {
			if n == name {
				ws |= 1 << uint(i)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown weekday %q", part)
		}
	}
	return ws, nil
}

// String renders the canonical comma-separated form in Sunday-first order.
func (ws WeekdaySet) String() string {
	parts := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		if ws&(1<<uint(i)) != 0 {
			parts = append(parts, weekdayNames[i])
		}
	}
	return strings.Join(parts, ",")
}

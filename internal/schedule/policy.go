package schedule

import (
	"fmt"
	"time"

	"github.com/avelora/court-reservation/internal/model"
)

// PolicyViolationError reports which booking-policy bound a reservation
// request breaks.  Rule is a stable machine-readable identifier; Message
// is the user-facing explanation naming the violated bound.
type PolicyViolationError struct {
	Rule    string
	Message string
}

func (e *PolicyViolationError) Error() string { return e.Message }

// Policy rule identifiers used in PolicyViolationError.Rule.
const (
	RuleAdvanceNotice = "advance_notice"
	RuleMaxAdvance    = "max_advance"
	RuleDuration      = "duration"
	RuleActiveLimit   = "active_limit"
)

// ValidateBookingWindow checks a requested slot against the booking policy:
// the slot must start at least MinAdvanceHours from now, must lie within
// MaxAdvanceDays, and its duration must fall inside the configured bounds.
// The per-user active-reservation cap needs a store count and is checked
// separately via ValidateActiveCount.
func ValidateBookingWindow(policy *model.BookingPolicy, date string, slot SlotWindow, now time.Time) error {
	start, err := slot.Start.On(date)
	if err != nil {
		return err
	}
	now = now.UTC()

	if notice := time.Duration(policy.MinAdvanceHours) * time.Hour; start.Before(now.Add(notice)) {
		return &PolicyViolationError{
			Rule:    RuleAdvanceNotice,
			Message: fmt.Sprintf("must book at least %d hours in advance", policy.MinAdvanceHours),
		}
	}
	if policy.MaxAdvanceDays > 0 {
		horizon := now.AddDate(0, 0, policy.MaxAdvanceDays)
		if start.After(horizon) {
			return &PolicyViolationError{
				Rule:    RuleMaxAdvance,
				Message: fmt.Sprintf("cannot book more than %d days ahead", policy.MaxAdvanceDays),
			}
		}
	}
	minutes := int(slot.End - slot.Start)
	if minutes < policy.MinDurationMinutes || (policy.MaxDurationMinutes > 0 && minutes > policy.MaxDurationMinutes) {
		return &PolicyViolationError{
			Rule: RuleDuration,
			Message: fmt.Sprintf("reservation length must be between %d and %d minutes",
				policy.MinDurationMinutes, policy.MaxDurationMinutes),
		}
	}
	return nil
}

// ValidateActiveCount enforces the per-user cap on concurrently active
// reservations.  A MaxActiveReservations of zero disables the cap.
func ValidateActiveCount(policy *model.BookingPolicy, activeCount int) error {
	if policy.MaxActiveReservations > 0 && activeCount >= policy.MaxActiveReservations {
		return &PolicyViolationError{
			Rule:    RuleActiveLimit,
			Message: fmt.Sprintf("you may hold at most %d active reservations", policy.MaxActiveReservations),
		}
	}
	return nil
}

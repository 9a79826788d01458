package model

import "time"

// BookingPolicy is the venue-wide booking configuration.  It is stored as a
// single row and owned by the administrative surface; the reservation
// engine only ever reads it.  Handlers load it once per request and pass
// it down as a value so the pure components never touch ambient state.
//
// Fields:
//  MinAdvanceHours       – a slot must start at least this many hours from now.
//  MaxAdvanceDays        – a slot's date may lie at most this many days ahead.
//  MinDurationMinutes    – lower bound on reservation length.
//  MaxDurationMinutes    – upper bound on reservation length.
//  FreeCancelHours       – cancellations at least this many hours before the
//                          slot start incur no penalty.
//  CancelPenaltyPercent  – penalty applied inside the free-cancellation window.
//  MaxActiveReservations – per-user cap on PENDING/CONFIRMED reservations;
//                          zero disables the cap.
//  UpdatedAt             – timestamp of last administrative change.
type BookingPolicy struct {
	MinAdvanceHours       int       // booking_policy.min_advance_hours
	MaxAdvanceDays        int       // booking_policy.max_advance_days
	MinDurationMinutes    int       // booking_policy.min_duration_minutes
	MaxDurationMinutes    int       // booking_policy.max_duration_minutes
	FreeCancelHours       int       // booking_policy.free_cancel_hours
	CancelPenaltyPercent  uint8     // booking_policy.cancel_penalty_percent
	MaxActiveReservations int       // booking_policy.max_active_reservations
	UpdatedAt             time.Time // booking_policy.updated_at
}

package model

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
// PENDING and CONFIRMED are active (they block a slot); CANCELLED and
// COMPLETED are terminal.  Transition rules live in the schedule package.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusCompleted ReservationStatus = "COMPLETED"
)

// Active reports whether the status blocks its slot from other bookings.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further transition is permitted.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Reservation records a user's booking of one court slot on one date.
// Rows are never deleted: cancellation is a status change, which keeps a
// full audit trail of every booking that was ever accepted.
//
// Fields:
//  ID           – primary key identifier.
//  CourtID      – court being reserved.
//  UserID       – user who made the reservation.
//  PlayDate     – calendar date of the slot ("YYYY-MM-DD").
//  StartTime    – slot start, inclusive.
//  EndTime      – slot end, exclusive (start plus one hour).
//  PriceCents   – price charged for the slot in cents.
//  Status       – lifecycle state, see ReservationStatus.
//  PaymentRef   – external payment reference, if the booking was paid.
//  CancelReason – free-text reason recorded on cancellation.
//  CancelledAt  – when the reservation was cancelled.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – timestamp of last update.
type Reservation struct {
	ID           uint64            // reservations.id
	CourtID      uint64            // reservations.court_id
	UserID       uint64            // reservations.user_id
	PlayDate     string            // reservations.play_date
	StartTime    TimeOfDay         // reservations.start_time
	EndTime      TimeOfDay         // reservations.end_time
	PriceCents   uint32            // reservations.price_cents
	Status       ReservationStatus // reservations.status
	PaymentRef   *string           // reservations.payment_ref (nullable)
	CancelReason *string           // reservations.cancel_reason (nullable)
	CancelledAt  *time.Time        // reservations.cancelled_at (nullable)
	CreatedAt    time.Time         // reservations.created_at
	UpdatedAt    time.Time         // reservations.updated_at
}

// StartsAt returns the absolute UTC instant the reserved slot begins.
func (r *Reservation) StartsAt() (time.Time, error) {
	return r.StartTime.On(r.PlayDate)
}

// EndsAt returns the absolute UTC instant the reserved slot ends.
func (r *Reservation) EndsAt() (time.Time, error) {
	return r.EndTime.On(r.PlayDate)
}

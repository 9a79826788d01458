package schedule

import (
	"time"

	"github.com/avelora/court-reservation/internal/model"
)

// CancellationQuote is the outcome of evaluating a cancellation request.
// The engine only reports the penalty; executing the refund is the payment
// collaborator's job.
type CancellationQuote struct {
	Allowed         bool    `json:"allowed"`
	PenaltyPercent  uint8   `json:"penalty_percent"`
	HoursUntilStart float64 `json:"hours_until_start"`
}

// EvaluateCancellation decides whether a reservation may be cancelled at
// instant now and what penalty applies.  Only PENDING and CONFIRMED
// reservations may cancel; terminal states yield an InvalidTransitionError.
// A cancellation at least policy.FreeCancelHours before the slot start is
// free; anything later (including after the slot has started) incurs the
// configured penalty percentage.
func EvaluateCancellation(res *model.Reservation, policy *model.BookingPolicy, now time.Time) (CancellationQuote, error) {
	if err := Transition(res.Status, model.StatusCancelled); err != nil {
		return CancellationQuote{}, err
	}
	start, err := res.StartsAt()
	if err != nil {
		return CancellationQuote{}, err
	}
	hours := start.Sub(now.UTC()).Hours()
	q := CancellationQuote{Allowed: true, HoursUntilStart: hours}
	if hours < float64(policy.FreeCancelHours) {
		q.PenaltyPercent = policy.CancelPenaltyPercent
	}
	return q, nil
}

package schedule

import (
	"fmt"

	"github.com/avelora/court-reservation/internal/model"
)

// InvalidTransitionError reports a reservation status change that the
// state machine does not permit.  It names both states so handlers can
// surface an actionable message.
type InvalidTransitionError struct {
	From model.ReservationStatus
	To   model.ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid reservation transition %s -> %s", e.From, e.To)
}

// transitions is the full set of permitted status changes.  CANCELLED and
// COMPLETED are terminal: nothing leaves them.
var transitions = map[model.ReservationStatus][]model.ReservationStatus{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCancelled, model.StatusCompleted},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to model.ReservationStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns an InvalidTransitionError
// when the change is not permitted.  It is the single gate through which
// every reservation status mutation must pass.
func Transition(from, to model.ReservationStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// InitialStatus picks the creation status for a new reservation.  Bookings
// that arrive with a payment reference have already cleared payment and
// start CONFIRMED; everything else starts PENDING and is confirmed when
// the payment collaborator reports success.
func InitialStatus(paymentRef *string) model.ReservationStatus {
	if paymentRef != nil && *paymentRef != "" {
		return model.StatusConfirmed
	}
	return model.StatusPending
}

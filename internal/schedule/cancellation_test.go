package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/court-reservation/internal/model"
)

func testPolicy() *model.BookingPolicy {
	return &model.BookingPolicy{
		MinAdvanceHours:       2,
		MaxAdvanceDays:        30,
		MinDurationMinutes:    60,
		MaxDurationMinutes:    60,
		FreeCancelHours:       24,
		CancelPenaltyPercent:  50,
		MaxActiveReservations: 5,
	}
}

func TestEvaluateCancellationFreeOutsideWindow(t *testing.T) {
	res := reservationAt(1, "2026-09-10", "18:00", model.StatusConfirmed)
	// 48 hours before the slot starts.
	now := time.Date(2026, 9, 8, 18, 0, 0, 0, time.UTC)

	q, err := EvaluateCancellation(&res, testPolicy(), now)
	require.NoError(t, err)
	assert.True(t, q.Allowed)
	assert.Equal(t, uint8(0), q.PenaltyPercent)
	assert.InDelta(t, 48.0, q.HoursUntilStart, 0.01)
}

func TestEvaluateCancellationExactlyAtThresholdIsFree(t *testing.T) {
	res := reservationAt(1, "2026-09-10", "18:00", model.StatusConfirmed)
	now := time.Date(2026, 9, 9, 18, 0, 0, 0, time.UTC)

	q, err := EvaluateCancellation(&res, testPolicy(), now)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), q.PenaltyPercent)
}

func TestEvaluateCancellationPenaltyInsideWindow(t *testing.T) {
	res := reservationAt(1, "2026-09-10", "18:00", model.StatusConfirmed)
	// Only 6 hours of notice.
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	q, err := EvaluateCancellation(&res, testPolicy(), now)
	require.NoError(t, err)
	assert.True(t, q.Allowed)
	assert.Equal(t, uint8(50), q.PenaltyPercent)
}

func TestEvaluateCancellationAfterStartStillPenalized(t *testing.T) {
	res := reservationAt(1, "2026-09-10", "18:00", model.StatusConfirmed)
	now := time.Date(2026, 9, 10, 18, 30, 0, 0, time.UTC)

	q, err := EvaluateCancellation(&res, testPolicy(), now)
	require.NoError(t, err)
	assert.Equal(t, uint8(50), q.PenaltyPercent)
	assert.Less(t, q.HoursUntilStart, 0.0)
}

func TestEvaluateCancellationPendingAllowed(t *testing.T) {
	res := reservationAt(1, "2026-09-10", "18:00", model.StatusPending)
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	q, err := EvaluateCancellation(&res, testPolicy(), now)
	require.NoError(t, err)
	assert.True(t, q.Allowed)
}

func TestEvaluateCancellationTerminalRejected(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	for _, st := range []model.ReservationStatus{model.StatusCancelled, model.StatusCompleted} {
		res := reservationAt(1, "2026-09-10", "18:00", st)
		_, err := EvaluateCancellation(&res, testPolicy(), now)
		require.Error(t, err, st)

		var tr *InvalidTransitionError
		assert.True(t, errors.As(err, &tr), st)
	}
}

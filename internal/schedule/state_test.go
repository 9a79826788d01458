package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/court-reservation/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to model.ReservationStatus }{
		{model.StatusPending, model.StatusConfirmed},
		{model.StatusPending, model.StatusCancelled},
		{model.StatusConfirmed, model.StatusCancelled},
		{model.StatusConfirmed, model.StatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	all := []model.ReservationStatus{
		model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted,
	}
	// Terminal states have no outgoing edges at all.
	for _, from := range []model.ReservationStatus{model.StatusCancelled, model.StatusCompleted} {
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	// The remaining combinations are rejected too.
	assert.False(t, CanTransition(model.StatusPending, model.StatusCompleted))
	assert.False(t, CanTransition(model.StatusConfirmed, model.StatusPending))
	for _, s := range all {
		assert.False(t, CanTransition(s, s), "self transition %s", s)
	}
}

func TestTransitionError(t *testing.T) {
	err := Transition(model.StatusCancelled, model.StatusConfirmed)
	require.Error(t, err)

	var tr *InvalidTransitionError
	require.True(t, errors.As(err, &tr))
	assert.Equal(t, model.StatusCancelled, tr.From)
	assert.Equal(t, model.StatusConfirmed, tr.To)
	assert.Contains(t, tr.Error(), "CANCELLED")

	assert.NoError(t, Transition(model.StatusPending, model.StatusConfirmed))
}

func TestInitialStatus(t *testing.T) {
	ref := "pay_123"
	empty := ""
	assert.Equal(t, model.StatusConfirmed, InitialStatus(&ref))
	assert.Equal(t, model.StatusPending, InitialStatus(nil))
	assert.Equal(t, model.StatusPending, InitialStatus(&empty))
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, model.StatusPending.Active())
	assert.True(t, model.StatusConfirmed.Active())
	assert.False(t, model.StatusCancelled.Active())
	assert.False(t, model.StatusCompleted.Active())

	assert.True(t, model.StatusCancelled.Terminal())
	assert.True(t, model.StatusCompleted.Terminal())
	assert.False(t, model.StatusPending.Terminal())
	assert.False(t, model.StatusConfirmed.Terminal())
}

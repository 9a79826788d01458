package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireRule(t *testing.T, err error, rule string) {
	t.Helper()
	require.Error(t, err)
	var pv *PolicyViolationError
	require.True(t, errors.As(err, &pv))
	assert.Equal(t, rule, pv.Rule)
}

func TestValidateBookingWindowAccepts(t *testing.T) {
	policy := testPolicy()
	slot := SlotWindow{Start: mustTime(t, "18:00"), End: mustTime(t, "19:00")}
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateBookingWindow(policy, "2026-09-06", slot, now))
}

func TestValidateBookingWindowAdvanceNotice(t *testing.T) {
	policy := testPolicy() // MinAdvanceHours: 2
	slot := SlotWindow{Start: mustTime(t, "11:00"), End: mustTime(t, "12:00")}
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)

	// One hour of notice is not enough.
	requireRule(t, ValidateBookingWindow(policy, "2026-09-05", slot, now), RuleAdvanceNotice)

	// Exactly two hours of notice passes.
	slot = SlotWindow{Start: mustTime(t, "12:00"), End: mustTime(t, "13:00")}
	assert.NoError(t, ValidateBookingWindow(policy, "2026-09-05", slot, now))

	// A slot in the past is far below the minimum notice.
	slot = SlotWindow{Start: mustTime(t, "08:00"), End: mustTime(t, "09:00")}
	requireRule(t, ValidateBookingWindow(policy, "2026-09-05", slot, now), RuleAdvanceNotice)
}

func TestValidateBookingWindowMaxAdvance(t *testing.T) {
	policy := testPolicy() // MaxAdvanceDays: 30
	slot := SlotWindow{Start: mustTime(t, "10:00"), End: mustTime(t, "11:00")}
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)

	requireRule(t, ValidateBookingWindow(policy, "2026-10-20", slot, now), RuleMaxAdvance)
	assert.NoError(t, ValidateBookingWindow(policy, "2026-10-05", slot, now))
}

func TestValidateBookingWindowDuration(t *testing.T) {
	policy := testPolicy() // exactly 60 minutes allowed
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)

	short := SlotWindow{Start: mustTime(t, "10:00"), End: mustTime(t, "10:30")}
	requireRule(t, ValidateBookingWindow(policy, "2026-09-06", short, now), RuleDuration)

	long := SlotWindow{Start: mustTime(t, "10:00"), End: mustTime(t, "12:00")}
	requireRule(t, ValidateBookingWindow(policy, "2026-09-06", long, now), RuleDuration)
}

func TestValidateBookingWindowBadDate(t *testing.T) {
	slot := SlotWindow{Start: mustTime(t, "10:00"), End: mustTime(t, "11:00")}
	err := ValidateBookingWindow(testPolicy(), "not-a-date", slot, time.Now())
	require.Error(t, err)
	var pv *PolicyViolationError
	assert.False(t, errors.As(err, &pv), "malformed date is not a policy violation")
}

func TestValidateActiveCount(t *testing.T) {
	policy := testPolicy() // MaxActiveReservations: 5

	assert.NoError(t, ValidateActiveCount(policy, 0))
	assert.NoError(t, ValidateActiveCount(policy, 4))
	requireRule(t, ValidateActiveCount(policy, 5), RuleActiveLimit)
	requireRule(t, ValidateActiveCount(policy, 6), RuleActiveLimit)

	// Zero disables the cap entirely.
	policy.MaxActiveReservations = 0
	assert.NoError(t, ValidateActiveCount(policy, 1000))
}

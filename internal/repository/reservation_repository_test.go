package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

// Two racing inserts for a free slot both pass the locked existence check
// (their gap locks on the empty index range are compatible), so the loser
// surfaces either as a duplicate-key error on the active-slot unique
// index or as a deadlock victim. Both must read as a lost race, not as a
// generic store failure.
func TestIsSlotConflict(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '3-2026-09-01-10:00-1' for key 'uq_reservations_active_slot'"}
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock; try restarting transaction"}

	assert.True(t, isSlotConflict(dup))
	assert.True(t, isSlotConflict(deadlock))

	// Wrapped driver errors still classify.
	assert.True(t, isSlotConflict(fmt.Errorf("insert reservation: %w", dup)))
	assert.True(t, isSlotConflict(fmt.Errorf("insert reservation: %w", deadlock)))

	// Other MySQL errors and non-driver errors do not.
	assert.False(t, isSlotConflict(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}))
	assert.False(t, isSlotConflict(errors.New("connection reset by peer")))
}

// The cap check and the slot check must both be locking reads; a plain
// snapshot COUNT would let two concurrent bookings by one user each see
// the pre-insert count and both pass the cap.
func TestBookingQueriesLockTheirRanges(t *testing.T) {
	assert.True(t, strings.Contains(countActiveByUserQuery, "FOR UPDATE"))
	assert.True(t, strings.Contains(slotCheckQuery, "FOR UPDATE"))
}

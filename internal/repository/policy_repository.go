package repository

import (
	"context"
	"database/sql"

	"github.com/avelora/court-reservation/internal/model"
)

// PolicyRepo reads and writes the single booking_policy row.  The engine
// only ever reads it; updates come from the owner configuration surface.
type PolicyRepo struct {
	db *sql.DB
}

// NewPolicyRepo returns a new PolicyRepo bound to the given database.
func NewPolicyRepo(db *sql.DB) *PolicyRepo { return &PolicyRepo{db: db} }

// Get loads the policy singleton.  The row is seeded by the initial
// migration, so a missing row is a deployment error and is surfaced as-is.
func (r *PolicyRepo) Get(ctx context.Context) (*model.BookingPolicy, error) {
	var p model.BookingPolicy
	err := r.db.QueryRowContext(ctx,
		`SELECT min_advance_hours, max_advance_days, min_duration_minutes, max_duration_minutes,
		        free_cancel_hours, cancel_penalty_percent, max_active_reservations, updated_at
		 FROM booking_policy WHERE id=1`).Scan(
		&p.MinAdvanceHours, &p.MaxAdvanceDays, &p.MinDurationMinutes, &p.MaxDurationMinutes,
		&p.FreeCancelHours, &p.CancelPenaltyPercent, &p.MaxActiveReservations, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update rewrites the policy singleton.
func (r *PolicyRepo) Update(ctx context.Context, p *model.BookingPolicy) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE booking_policy SET min_advance_hours=?, max_advance_days=?, min_duration_minutes=?,
		        max_duration_minutes=?, free_cancel_hours=?, cancel_penalty_percent=?,
		        max_active_reservations=?
		 WHERE id=1`,
		p.MinAdvanceHours, p.MaxAdvanceDays, p.MinDurationMinutes, p.MaxDurationMinutes,
		p.FreeCancelHours, p.CancelPenaltyPercent, p.MaxActiveReservations)
	return err
}

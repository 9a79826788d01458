package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/avelora/court-reservation/internal/model"
)

// ReservationRepo provides data access to the reservations table.  It
// hosts the conflict-safe creation path: the existence check and the
// insert run inside one transaction with the candidate slot row-locked,
// so of any number of concurrent attempts for the same (court, date,
// start) key exactly one commits.  All timestamp fields are stored in
// UTC; slot times use the same "HH:MM" wire form as court hours.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can own transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationCols = `id, court_id, user_id, DATE_FORMAT(play_date,'%Y-%m-%d'),
	start_time, end_time, price_cents, status, payment_ref, cancel_reason,
	cancelled_at, created_at, updated_at`

// slotCheckQuery locks any active reservation row for a slot key so a
// status change cannot race the insert that follows.
const slotCheckQuery = `SELECT id FROM reservations
	 WHERE court_id=? AND play_date=? AND start_time=? AND status IN ('PENDING','CONFIRMED')
	 LIMIT 1 FOR UPDATE`

// CreateIfSlotFreeTx performs the check-then-create for one slot within
// the supplied transaction.  The locked existence check catches a slot
// that is already held; the uq_reservations_active_slot unique index is
// what actually decides a race between two inserts for a free slot, since
// their gap locks on the empty index range do not conflict.  The losing
// insert fails with a duplicate-key error, or with a deadlock when InnoDB
// aborts one transaction to let the other proceed; both outcomes map to
// ErrSlotTaken and the caller must roll back.  On success the record's ID
// and timestamps are populated from the inserted row.  The caller commits
// or rolls back.
func (r *ReservationRepo) CreateIfSlotFreeTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	var existing uint64
	err := tx.QueryRowContext(ctx, slotCheckQuery,
		res.CourtID, res.PlayDate, res.StartTime.String()).Scan(&existing)
	if err == nil {
		return ErrSlotTaken
	}
	if err != sql.ErrNoRows {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations
		 (court_id, user_id, play_date, start_time, end_time, price_cents, status, payment_ref)
		 VALUES (?,?,?,?,?,?,?,?)`,
		res.CourtID, res.UserID, res.PlayDate, res.StartTime.String(), res.EndTime.String(),
		res.PriceCents, string(res.Status), res.PaymentRef)
	if err != nil {
		if isSlotConflict(err) {
			return ErrSlotTaken
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	row := tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id=?`, res.ID)
	got, err := scanReservation(row)
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// isSlotConflict reports whether err means another booking won the slot:
// MySQL 1062 (duplicate key on the active-slot unique index) or 1213
// (deadlock victim; InnoDB rolled this transaction back so the competing
// insert could commit).  Falls back to matching the error text for errors
// that did not come through the driver type.
func isSlotConflict(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062 || me.Number == 1213
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") || strings.Contains(msg, "1213")
}

// countActiveByUserQuery is a locking read: FOR UPDATE holds the
// (user_id, status) index range until commit, so two bookings by the same
// user serialize on the cap check instead of both reading the same
// snapshot count.
const countActiveByUserQuery = `SELECT COUNT(*) FROM reservations
	 WHERE user_id=? AND status IN ('PENDING','CONFIRMED') FOR UPDATE`

// CountActiveByUserTx counts the user's PENDING and CONFIRMED reservations
// inside the transaction, for enforcing the per-user active cap.
func (r *ReservationRepo) CountActiveByUserTx(ctx context.Context, tx *sql.Tx, userID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, countActiveByUserQuery, userID).Scan(&n)
	return n, err
}

// ListActiveByCourtDate returns the PENDING and CONFIRMED reservations for
// one court and date, ordered by slot start.  This feeds the availability
// resolver; callers must propagate a failure here rather than treating the
// calendar as free.
func (r *ReservationRepo) ListActiveByCourtDate(ctx context.Context, courtID uint64, date string) ([]model.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationCols+` FROM reservations
		 WHERE court_id=? AND play_date=? AND status IN ('PENDING','CONFIRMED')
		 ORDER BY start_time`, courtID, date)
}

// ListByUser returns all of a user's reservations, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationCols+` FROM reservations
		 WHERE user_id=? ORDER BY created_at DESC`, userID)
}

// ListByCourtForOwner returns reservations on a court after verifying the
// caller owns it.  An empty date returns every reservation for the court;
// otherwise only the given day.  Returns ErrCourtNotFound when the court
// does not exist and ErrForbidden when it belongs to someone else.
func (r *ReservationRepo) ListByCourtForOwner(ctx context.Context, courtID, ownerID uint64, date string) ([]model.Reservation, error) {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM courts WHERE id=?`, courtID).Scan(&actualOwner)
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}
	if date == "" {
		return r.list(ctx,
			`SELECT `+reservationCols+` FROM reservations
			 WHERE court_id=? ORDER BY play_date DESC, start_time`, courtID)
	}
	return r.list(ctx,
		`SELECT `+reservationCols+` FROM reservations
		 WHERE court_id=? AND play_date=? ORDER BY start_time`, courtID, date)
}

// GetByID loads one reservation.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id=?`, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// GetByIDForUpdateTx loads one reservation with its row locked, so that a
// status change based on the loaded state cannot race another writer.
func (r *ReservationRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id=? FOR UPDATE`, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// UpdateStatusTx writes a status change decided by the state machine.
// Cancellation metadata is written only when to is CANCELLED.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, to model.ReservationStatus, reason *string, at time.Time) error {
	if to == model.StatusCancelled {
		_, err := tx.ExecContext(ctx,
			`UPDATE reservations SET status=?, cancel_reason=?, cancelled_at=? WHERE id=?`,
			string(to), reason, at.UTC(), id)
		return err
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status=? WHERE id=?`, string(to), id)
	return err
}

// ConfirmTx flips a reservation to CONFIRMED and records the payment
// reference reported by the payment collaborator.  The state machine
// check happens in the caller while the row is locked.
func (r *ReservationRepo) ConfirmTx(ctx context.Context, tx *sql.Tx, id uint64, paymentRef string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status=?, payment_ref=? WHERE id=?`,
		string(model.StatusConfirmed), paymentRef, id)
	return err
}

// CompleteElapsed transitions CONFIRMED reservations whose slot end has
// passed to COMPLETED.  It is invoked lazily from read paths the same way
// expired holds are swept on demand, so no background loop is needed.
// The CONFIRMED->COMPLETED edge is the only one applied in bulk; it is
// valid by construction, so the per-row state machine check is skipped.
func (r *ReservationRepo) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status='COMPLETED'
		 WHERE status='CONFIRMED'
		   AND STR_TO_DATE(CONCAT(DATE_FORMAT(play_date,'%Y-%m-%d'),' ',end_time), '%Y-%m-%d %H:%i') <= ?`,
		now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// scanReservation is the single decoding point for reservation rows.  It
// validates the stored slot times and status so malformed rows surface as
// errors here instead of as broken business logic downstream.
func scanReservation(s scanner) (*model.Reservation, error) {
	var (
		res         model.Reservation
		start, end  string
		status      string
		paymentRef  sql.NullString
		reason      sql.NullString
		cancelledAt sql.NullTime
	)
	err := s.Scan(&res.ID, &res.CourtID, &res.UserID, &res.PlayDate,
		&start, &end, &res.PriceCents, &status, &paymentRef, &reason,
		&cancelledAt, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if res.StartTime, err = model.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("reservation %d: %w", res.ID, err)
	}
	if res.EndTime, err = model.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("reservation %d: %w", res.ID, err)
	}
	switch st := model.ReservationStatus(status); st {
	case model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted:
		res.Status = st
	default:
		return nil, fmt.Errorf("reservation %d: unknown status %q", res.ID, status)
	}
	if paymentRef.Valid {
		v := paymentRef.String
		res.PaymentRef = &v
	}
	if reason.Valid {
		v := reason.String
		res.CancelReason = &v
	}
	if cancelledAt.Valid {
		v := cancelledAt.Time
		res.CancelledAt = &v
	}
	return &res, nil
}

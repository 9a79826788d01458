package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelora/court-reservation/internal/model"
)

// CourtRepo provides CRUD operations for courts and their price tiers.
// Operating hours and tier boundaries are stored as "HH:MM" strings and
// weekday sets as comma-separated day names; both are decoded here, at the
// store boundary, so malformed rows are rejected once instead of leaking
// into the engine.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo returns a new CourtRepo bound to the given database.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *CourtRepo) DB() *sql.DB { return r.db }

// Create inserts a court. The caller must have validated the operating
// hours invariant (open < close) already; this method only persists.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO courts (owner_id, name, open_time, close_time, default_price_cents, is_active)
		 VALUES (?,?,?,?,?,?)`,
		c.OwnerID, c.Name, c.OpenTime.String(), c.CloseTime.String(), c.DefaultPriceCents, c.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Update rewrites a court's mutable fields. Returns ErrCourtNotFound when
// the court does not exist or belongs to a different owner.
func (r *CourtRepo) Update(ctx context.Context, c *model.Court) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE courts SET name=?, open_time=?, close_time=?, default_price_cents=?, is_active=?
		 WHERE id=? AND owner_id=?`,
		c.Name, c.OpenTime.String(), c.CloseTime.String(), c.DefaultPriceCents, c.IsActive,
		c.ID, c.OwnerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such court" from "no change": re-check existence.
		var id uint64
		err := r.db.QueryRowContext(ctx,
			`SELECT id FROM courts WHERE id=? AND owner_id=?`, c.ID, c.OwnerID).Scan(&id)
		if err == sql.ErrNoRows {
			return ErrCourtNotFound
		}
		return err
	}
	return nil
}

// Deactivate soft-deletes a court. Reservations reference courts, so rows
// are never removed; an inactive court simply stops offering slots.
func (r *CourtRepo) Deactivate(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE courts SET is_active=0 WHERE id=? AND owner_id=?`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCourtNotFound
	}
	return nil
}

// GetByID loads one court together with its ordered price tiers.
func (r *CourtRepo) GetByID(ctx context.Context, id uint64) (*model.Court, error) {
	c, err := r.scanCourt(r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, open_time, close_time, default_price_cents, is_active, created_at, updated_at
		 FROM courts WHERE id=?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if err := r.loadTiers(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByIDAndOwner loads a court and verifies ownership, returning
// ErrForbidden when the court exists but belongs to someone else.
func (r *CourtRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Court, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return c, nil
}

// ListActive returns all bookable courts with their tiers, ordered by name.
func (r *CourtRepo) ListActive(ctx context.Context) ([]model.Court, error) {
	return r.list(ctx,
		`SELECT id, owner_id, name, open_time, close_time, default_price_cents, is_active, created_at, updated_at
		 FROM courts WHERE is_active=1 ORDER BY name`)
}

// ListByOwner returns every court owned by the given user, active or not.
func (r *CourtRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Court, error) {
	return r.list(ctx,
		`SELECT id, owner_id, name, open_time, close_time, default_price_cents, is_active, created_at, updated_at
		 FROM courts WHERE owner_id=? ORDER BY name`, ownerID)
}

// ReplaceTiers swaps a court's full tier list inside one transaction so a
// partially applied update is never observable. Tier positions follow the
// declared order of the slice.
func (r *CourtRepo) ReplaceTiers(ctx context.Context, courtID uint64, tiers []model.PriceTier) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM price_tiers WHERE court_id=?`, courtID); err != nil {
		return err
	}
	for i, t := range tiers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO price_tiers (court_id, position, start_time, end_time, price_cents, weekdays, is_active)
			 VALUES (?,?,?,?,?,?,?)`,
			courtID, i, t.StartTime.String(), t.EndTime.String(), t.PriceCents, t.Weekdays.String(), t.IsActive); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *CourtRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Court, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	courts := make([]model.Court, 0)
	for rows.Next() {
		c, err := r.scanCourt(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range courts {
		if err := r.loadTiers(ctx, &courts[i]); err != nil {
			return nil, err
		}
	}
	return courts, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *CourtRepo) scanCourt(s scanner) (*model.Court, error) {
	var (
		c          model.Court
		open, clos string
	)
	if err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &open, &clos,
		&c.DefaultPriceCents, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if c.OpenTime, err = model.ParseTimeOfDay(open); err != nil {
		return nil, fmt.Errorf("court %d: %w", c.ID, err)
	}
	if c.CloseTime, err = model.ParseTimeOfDay(clos); err != nil {
		return nil, fmt.Errorf("court %d: %w", c.ID, err)
	}
	return &c, nil
}

func (r *CourtRepo) loadTiers(ctx context.Context, c *model.Court) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, court_id, position, start_time, end_time, price_cents, weekdays, is_active
		 FROM price_tiers WHERE court_id=? ORDER BY position`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	c.Tiers = c.Tiers[:0]
	for rows.Next() {
		var (
			t           model.PriceTier
			start, end  string
			weekdaysCSV string
		)
		if err := rows.Scan(&t.ID, &t.CourtID, &t.Position, &start, &end,
			&t.PriceCents, &weekdaysCSV, &t.IsActive); err != nil {
			return err
		}
		if t.StartTime, err = model.ParseTimeOfDay(start); err != nil {
			return fmt.Errorf("tier %d: %w", t.ID, err)
		}
		if t.EndTime, err = model.ParseTimeOfDay(end); err != nil {
			return fmt.Errorf("tier %d: %w", t.ID, err)
		}
		if t.Weekdays, err = model.ParseWeekdaySet(weekdaysCSV); err != nil {
			return fmt.Errorf("tier %d: %w", t.ID, err)
		}
		c.Tiers = append(c.Tiers, t)
	}
	return rows.Err()
}

// ValidateCourt checks the data invariants enforced at the admin write
// boundary: opening before closing, and each tier's start before its end.
// The engine itself assumes these hold.
func ValidateCourt(c *model.Court) error {
	if !c.OpenTime.Valid() || !c.CloseTime.Valid() {
		return fmt.Errorf("operating hours out of range")
	}
	if c.OpenTime >= c.CloseTime {
		return fmt.Errorf("opening time must be before closing time")
	}
	for i, t := range c.Tiers {
		if t.StartTime >= t.EndTime {
			return fmt.Errorf("tier %d: start must be before end", i)
		}
		if t.Weekdays.Empty() {
			return fmt.Errorf("tier %d: weekday set is empty", i)
		}
	}
	return nil
}

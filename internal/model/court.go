package model

import "time"

// Court represents a rentable sports court owned by a user.  Each court
// carries its own operating hours and price configuration.  This struct
// corresponds to a row in the `courts` table; Tiers is populated from the
// `price_tiers` table in declared order.
//
// Fields:
//  ID                – primary key identifier.
//  OwnerID           – user ID of the court owner.
//  Name              – unique name of the court per owner.
//  OpenTime          – first minute of the day the court can be booked.
//  CloseTime         – minute of the day after which no slot may end.
//  DefaultPriceCents – hourly price in cents when no tier matches.
//  Tiers             – ordered price tier overrides (first match wins).
//  IsActive          – whether the court is currently bookable.
//  CreatedAt         – timestamp when the court was created.
//  UpdatedAt         – timestamp of last update.
//
// Invariant: OpenTime < CloseTime.  Enforced at the owner write boundary,
// never re-checked inside the slot generator.
type Court struct {
	ID                uint64      // courts.id
	OwnerID           uint64      // courts.owner_id
	Name              string      // courts.name
	OpenTime          TimeOfDay   // courts.open_time
	CloseTime         TimeOfDay   // courts.close_time
	DefaultPriceCents uint32      // courts.default_price_cents
	Tiers             []PriceTier // price_tiers rows ordered by position
	IsActive          bool        // courts.is_active
	CreatedAt         time.Time   // courts.created_at
	UpdatedAt         time.Time   // courts.updated_at
}

// PriceTier is a time-of-day and weekday scoped override of a court's
// hourly price.  Tiers are evaluated in declared order and the first
// active match wins; overlapping tiers are therefore legal.
//
// Fields:
//  ID         – primary key identifier.
//  CourtID    – court the tier belongs to.
//  Position   – zero-based declared order within the court.
//  StartTime  – inclusive start of the tier's time range.
//  EndTime    – exclusive end of the tier's time range.
//  PriceCents – hourly price in cents while the tier applies.
//  Weekdays   – set of weekdays the tier applies to.
//  IsActive   – inactive tiers are skipped during resolution.
//
// Invariant: StartTime < EndTime.  Enforced at the owner write boundary.
type PriceTier struct {
	ID         uint64     // price_tiers.id
	CourtID    uint64     // price_tiers.court_id
	Position   int        // price_tiers.position
	StartTime  TimeOfDay  // price_tiers.start_time
	EndTime    TimeOfDay  // price_tiers.end_time
	PriceCents uint32     // price_tiers.price_cents
	Weekdays   WeekdaySet // price_tiers.weekdays (CSV in the database)
	IsActive   bool       // price_tiers.is_active
}

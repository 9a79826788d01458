// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names for reservation lifecycle events. The routing key equals the
// queue name; everything goes through the default exchange.
const (
	ReservationConfirmedQueue = "reservation.confirmed"
	ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationConfirmedEvent is published when a reservation reaches the
// CONFIRMED state, either at creation (paid upfront) or on a later
// confirmation. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	EventID       string `json:"event_id"`
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	CourtID       uint64 `json:"court_id"`
	CourtName     string `json:"court_name"`
	PlayDate      string `json:"play_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	PriceCents    uint32 `json:"price_cents"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a reservation is cancelled,
// including the penalty the cancellation policy assessed at that moment.
type ReservationCancelledEvent struct {
	EventID        string `json:"event_id"`
	ReservationID  uint64 `json:"reservation_id"`
	UserID         uint64 `json:"user_id"`
	CourtID        uint64 `json:"court_id"`
	CourtName      string `json:"court_name"`
	PlayDate       string `json:"play_date"`
	StartTime      string `json:"start_time"`
	PenaltyPercent uint8  `json:"penalty_percent"`
	Reason         string `json:"reason,omitempty"`
	CancelledAt    string `json:"cancelled_at"`
}

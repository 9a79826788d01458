package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avelora/court-reservation/internal/model"
	"github.com/avelora/court-reservation/internal/queue"
	"github.com/avelora/court-reservation/internal/repository"
	"github.com/avelora/court-reservation/internal/schedule"
	queue_publisher "github.com/avelora/court-reservation/internal/service"
)

// ReservationHandler serves the customer-facing booking endpoints. It owns
// the transactions around the conflict-safe writer so the lock scope is
// visible in one place.
type ReservationHandler struct {
	Courts       *repository.CourtRepo
	Reservations *repository.ReservationRepo
	Policies     *repository.PolicyRepo
}

type createReservationReq struct {
	CourtID    uint64  `json:"court_id"`
	Date       string  `json:"date"`  // YYYY-MM-DD
	Start      string  `json:"start"` // HH:MM, must be a generated slot start
	PaymentRef *string `json:"payment_ref,omitempty"`
}

type cancelReservationReq struct {
	Reason string `json:"reason,omitempty"`
}

// reservationView is the JSON shape returned for a reservation.
type reservationView struct {
	ID          uint64     `json:"id"`
	CourtID     uint64     `json:"court_id"`
	Date        string     `json:"date"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	PriceCents  uint32     `json:"price_cents"`
	Status      string     `json:"status"`
	PaymentRef  *string    `json:"payment_ref,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	Reason      *string    `json:"cancel_reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func viewOf(r *model.Reservation) reservationView {
	return reservationView{
		ID:          r.ID,
		CourtID:     r.CourtID,
		Date:        r.PlayDate,
		Start:       r.StartTime.String(),
		End:         r.EndTime.String(),
		PriceCents:  r.PriceCents,
		Status:      string(r.Status),
		PaymentRef:  r.PaymentRef,
		CancelledAt: r.CancelledAt,
		Reason:      r.CancelReason,
		CreatedAt:   r.CreatedAt,
	}
}

// Create books one slot. The request names a court, date and slot start;
// the slot must be one the court's calendar generates, the booking window
// policy must allow it, and no active reservation may hold the slot. The
// existence check and insert run in a single transaction with the slot
// row-locked, so two racing requests for the same slot cannot both win.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := model.ParseDate(req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	start, err := model.ParseTimeOfDay(req.Start)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be HH:MM"})
	}
	if req.PaymentRef != nil && strings.TrimSpace(*req.PaymentRef) == "" {
		req.PaymentRef = nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	court, err := h.Courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return storeError(c, err, "database error")
	}
	if !court.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
	}

	slot, ok := schedule.FindSlot(court, start)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start is not a bookable slot on this court"})
	}

	policy, err := h.Policies.Get(ctx)
	if err != nil {
		return storeError(c, err, "load policy failed")
	}

	now := time.Now().UTC()
	if err := schedule.ValidateBookingWindow(policy, req.Date, slot, now); err != nil {
		return policyViolation(c, err)
	}

	day, _ := model.ParseDate(req.Date)
	res := &model.Reservation{
		CourtID:    court.ID,
		UserID:     uid,
		PlayDate:   req.Date,
		StartTime:  slot.Start,
		EndTime:    slot.End,
		PriceCents: schedule.ResolvePrice(court, slot.Start, day.Weekday()),
		Status:     schedule.InitialStatus(req.PaymentRef),
		PaymentRef: req.PaymentRef,
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return storeError(c, err, "begin tx failed")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	active, err := h.Reservations.CountActiveByUserTx(ctx, tx, uid)
	if err != nil {
		return storeError(c, err, "database error")
	}
	if err := schedule.ValidateActiveCount(policy, active); err != nil {
		return policyViolation(c, err)
	}

	if err := h.Reservations.CreateIfSlotFreeTx(ctx, tx, res); err != nil {
		if err == repository.ErrSlotTaken {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":   "slot_unavailable",
				"message": "slot is already reserved",
			})
		}
		return storeError(c, err, "create reservation failed")
	}
	if err := tx.Commit(); err != nil {
		return storeError(c, err, "commit failed")
	}
	committed = true

	if res.Status == model.StatusConfirmed {
		ev := queue.ReservationConfirmedEvent{
			EventID:       uuid.NewString(),
			ReservationID: res.ID,
			UserID:        res.UserID,
			CourtID:       court.ID,
			CourtName:     court.Name,
			PlayDate:      res.PlayDate,
			StartTime:     res.StartTime.String(),
			EndTime:       res.EndTime.String(),
			PriceCents:    res.PriceCents,
			ConfirmedAt:   now.Format(time.RFC3339),
		}
		go func() { _ = queue_publisher.PublishReservationConfirmed(context.Background(), ev) }()
	}

	return c.JSON(http.StatusCreated, viewOf(res))
}

// ListMine returns all of the caller's reservations, newest first.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	_, _ = h.Reservations.CompleteElapsed(ctx, time.Now().UTC())
	list, err := h.Reservations.ListByUser(ctx, uid)
	if err != nil {
		return storeError(c, err, "database error")
	}
	out := make([]reservationView, 0, len(list))
	for i := range list {
		out = append(out, viewOf(&list[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get returns one of the caller's reservations.
func (h *ReservationHandler) Get(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return storeError(c, err, "database error")
	}
	if res.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, viewOf(res))
}

type confirmReservationReq struct {
	PaymentRef string `json:"payment_ref"`
}

// Confirm moves a PENDING reservation to CONFIRMED once the payment
// collaborator reports success, recording the payment reference.  Only
// the PENDING -> CONFIRMED edge is reachable here; anything else is an
// invalid transition.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req confirmReservationReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.PaymentRef) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_ref required"})
	}
	req.PaymentRef = strings.TrimSpace(req.PaymentRef)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return storeError(c, err, "begin tx failed")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return storeError(c, err, "database error")
	}
	if res.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := schedule.Transition(res.Status, model.StatusConfirmed); err != nil {
		var tr *schedule.InvalidTransitionError
		if errors.As(err, &tr) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":   "invalid_transition",
				"message": tr.Error(),
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
	}
	if err := h.Reservations.ConfirmTx(ctx, tx, res.ID, req.PaymentRef); err != nil {
		return storeError(c, err, "confirm failed")
	}
	if err := tx.Commit(); err != nil {
		return storeError(c, err, "commit failed")
	}
	committed = true

	res.Status = model.StatusConfirmed
	res.PaymentRef = &req.PaymentRef

	now := time.Now().UTC()
	courtName := ""
	if court, err := h.Courts.GetByID(ctx, res.CourtID); err == nil {
		courtName = court.Name
	}
	ev := queue.ReservationConfirmedEvent{
		EventID:       uuid.NewString(),
		ReservationID: res.ID,
		UserID:        res.UserID,
		CourtID:       res.CourtID,
		CourtName:     courtName,
		PlayDate:      res.PlayDate,
		StartTime:     res.StartTime.String(),
		EndTime:       res.EndTime.String(),
		PriceCents:    res.PriceCents,
		ConfirmedAt:   now.Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishReservationConfirmed(context.Background(), ev) }()

	return c.JSON(http.StatusOK, viewOf(res))
}

// Cancel cancels one of the caller's reservations under the cancellation
// policy. The reservation row is locked while its state is evaluated so a
// concurrent status change cannot slip between the check and the write.
// The response includes the penalty quote assessed at cancellation time.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req cancelReservationReq
	_ = c.Bind(&req)
	req.Reason = strings.TrimSpace(req.Reason)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	policy, err := h.Policies.Get(ctx)
	if err != nil {
		return storeError(c, err, "load policy failed")
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return storeError(c, err, "begin tx failed")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return storeError(c, err, "database error")
	}
	if res.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	now := time.Now().UTC()
	quote, err := schedule.EvaluateCancellation(res, policy, now)
	if err != nil {
		var tr *schedule.InvalidTransitionError
		if errors.As(err, &tr) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":   "invalid_transition",
				"message": tr.Error(),
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "evaluate cancellation failed"})
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, res.ID, model.StatusCancelled, reason, now); err != nil {
		return storeError(c, err, "cancel failed")
	}
	if err := tx.Commit(); err != nil {
		return storeError(c, err, "commit failed")
	}
	committed = true

	res.Status = model.StatusCancelled
	res.CancelReason = reason
	res.CancelledAt = &now

	courtName := ""
	if court, err := h.Courts.GetByID(ctx, res.CourtID); err == nil {
		courtName = court.Name
	}
	ev := queue.ReservationCancelledEvent{
		EventID:        uuid.NewString(),
		ReservationID:  res.ID,
		UserID:         res.UserID,
		CourtID:        res.CourtID,
		CourtName:      courtName,
		PlayDate:       res.PlayDate,
		StartTime:      res.StartTime.String(),
		PenaltyPercent: quote.PenaltyPercent,
		Reason:         req.Reason,
		CancelledAt:    now.Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishReservationCancelled(context.Background(), ev) }()

	return c.JSON(http.StatusOK, echo.Map{
		"reservation": viewOf(res),
		"quote":       quote,
	})
}

// policyViolation maps a booking policy failure to 422 with the rule that
// failed, or falls through to 500 for unexpected errors.
func policyViolation(c echo.Context, err error) error {
	var pv *schedule.PolicyViolationError
	if errors.As(err, &pv) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":   "policy_violation",
			"rule":    pv.Rule,
			"message": pv.Message,
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "policy check failed"})
}

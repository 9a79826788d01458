package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelora/court-reservation/internal/model"
	"github.com/avelora/court-reservation/internal/repository"
)

// PolicyHandler exposes the singleton booking policy to owners. Changes
// apply to subsequent bookings and cancellations immediately; existing
// reservations are untouched.
type PolicyHandler struct {
	Policies *repository.PolicyRepo
}

type policyReq struct {
	MinAdvanceHours       int   `json:"min_advance_hours"`
	MaxAdvanceDays        int   `json:"max_advance_days"`
	MinDurationMinutes    int   `json:"min_duration_minutes"`
	MaxDurationMinutes    int   `json:"max_duration_minutes"`
	FreeCancelHours       int   `json:"free_cancel_hours"`
	CancelPenaltyPercent  uint8 `json:"cancel_penalty_percent"`
	MaxActiveReservations int   `json:"max_active_reservations"`
}

type policyView struct {
	policyReq
	UpdatedAt time.Time `json:"updated_at"`
}

func viewOfPolicy(p *model.BookingPolicy) policyView {
	return policyView{
		policyReq: policyReq{
			MinAdvanceHours:       p.MinAdvanceHours,
			MaxAdvanceDays:        p.MaxAdvanceDays,
			MinDurationMinutes:    p.MinDurationMinutes,
			MaxDurationMinutes:    p.MaxDurationMinutes,
			FreeCancelHours:       p.FreeCancelHours,
			CancelPenaltyPercent:  p.CancelPenaltyPercent,
			MaxActiveReservations: p.MaxActiveReservations,
		},
		UpdatedAt: p.UpdatedAt,
	}
}

// GetPolicy returns the current booking policy.
func (h *PolicyHandler) GetPolicy(c echo.Context) error {
	p, err := h.Policies.Get(c.Request().Context())
	if err != nil {
		return storeError(c, err, "load policy failed")
	}
	return c.JSON(http.StatusOK, viewOfPolicy(p))
}

// UpdatePolicy rewrites the booking policy.
func (h *PolicyHandler) UpdatePolicy(c echo.Context) error {
	var req policyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MinAdvanceHours < 0 || req.MaxAdvanceDays <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "advance window out of range"})
	}
	if req.MinDurationMinutes <= 0 || req.MaxDurationMinutes < req.MinDurationMinutes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration bounds out of range"})
	}
	if req.FreeCancelHours < 0 || req.CancelPenaltyPercent > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cancellation terms out of range"})
	}
	if req.MaxActiveReservations < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_active_reservations out of range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := &model.BookingPolicy{
		MinAdvanceHours:       req.MinAdvanceHours,
		MaxAdvanceDays:        req.MaxAdvanceDays,
		MinDurationMinutes:    req.MinDurationMinutes,
		MaxDurationMinutes:    req.MaxDurationMinutes,
		FreeCancelHours:       req.FreeCancelHours,
		CancelPenaltyPercent:  req.CancelPenaltyPercent,
		MaxActiveReservations: req.MaxActiveReservations,
	}
	if err := h.Policies.Update(ctx, p); err != nil {
		return storeError(c, err, "update policy failed")
	}
	updated, err := h.Policies.Get(ctx)
	if err != nil {
		return storeError(c, err, "load policy failed")
	}
	return c.JSON(http.StatusOK, viewOfPolicy(updated))
}

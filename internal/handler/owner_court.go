package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelora/court-reservation/internal/model"
	"github.com/avelora/court-reservation/internal/repository"
)

// OwnerHandler serves court management endpoints for users with the OWNER
// role. Ownership is enforced on every mutation.
type OwnerHandler struct {
	Courts *repository.CourtRepo
}

type courtReq struct {
	Name              string `json:"name"`
	OpenTime          string `json:"open_time"`  // HH:MM
	CloseTime         string `json:"close_time"` // HH:MM
	DefaultPriceCents uint32 `json:"default_price_cents"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

type tierReq struct {
	Start      string `json:"start"` // HH:MM
	End        string `json:"end"`   // HH:MM
	PriceCents uint32 `json:"price_cents"`
	Weekdays   string `json:"weekdays"` // CSV of MON..SUN, empty means every day
	IsActive   *bool  `json:"is_active,omitempty"`
}

type replaceTiersReq struct {
	Tiers []tierReq `json:"tiers"`
}

// ownerCourtView includes fields hidden from the public API.
type ownerCourtView struct {
	PublicCourt
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ownerView(c *model.Court) ownerCourtView {
	return ownerCourtView{
		PublicCourt: publicCourt(c),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// decodeCourt binds and validates a court payload into a model.Court.
func decodeCourt(c echo.Context, ownerID uint64) (*model.Court, error) {
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "name required")
	}
	open, err := model.ParseTimeOfDay(req.OpenTime)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "open_time must be HH:MM")
	}
	clos, err := model.ParseTimeOfDay(req.CloseTime)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "close_time must be HH:MM")
	}
	court := &model.Court{
		OwnerID:           ownerID,
		Name:              req.Name,
		OpenTime:          open,
		CloseTime:         clos,
		DefaultPriceCents: req.DefaultPriceCents,
		IsActive:          true,
	}
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}
	if err := repository.ValidateCourt(court); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return court, nil
}

// CreateCourt registers a new court for the calling owner.
func (h *OwnerHandler) CreateCourt(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	court, err := decodeCourt(c, uid)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courts.Create(ctx, court); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "court name already in use"})
		}
		return storeError(c, err, "create court failed")
	}
	return c.JSON(http.StatusCreated, ownerView(court))
}

// ListCourts returns every court of the calling owner, active or not.
func (h *OwnerHandler) ListCourts(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courts, err := h.Courts.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return storeError(c, err, "database error")
	}
	out := make([]ownerCourtView, 0, len(courts))
	for i := range courts {
		out = append(out, ownerView(&courts[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateCourt rewrites a court's name, hours, base price and active flag.
func (h *OwnerHandler) UpdateCourt(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	court, derr := decodeCourt(c, uid)
	if derr != nil {
		if he, ok := derr.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	court.ID = id

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courts.Update(ctx, court); err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return storeError(c, err, "update court failed")
	}
	updated, err := h.Courts.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "database error")
	}
	return c.JSON(http.StatusOK, ownerView(updated))
}

// DeactivateCourt soft-deletes a court. Existing reservations keep their
// history; the court simply stops offering slots.
func (h *OwnerHandler) DeactivateCourt(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courts.Deactivate(ctx, id, uid); err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return storeError(c, err, "deactivate court failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceTiers swaps a court's full price tier list. Tier precedence
// follows array order: the first active tier matching a slot wins.
func (h *OwnerHandler) ReplaceTiers(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req replaceTiersReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	court, err := h.Courts.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		switch err {
		case repository.ErrCourtNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return storeError(c, err, "database error")
	}

	tiers := make([]model.PriceTier, 0, len(req.Tiers))
	for i, t := range req.Tiers {
		start, err := model.ParseTimeOfDay(t.Start)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tier start must be HH:MM"})
		}
		end, err := model.ParseTimeOfDay(t.End)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tier end must be HH:MM"})
		}
		days := model.EveryDay
		if strings.TrimSpace(t.Weekdays) != "" {
			if days, err = model.ParseWeekdaySet(t.Weekdays); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
		}
		tier := model.PriceTier{
			CourtID:    court.ID,
			Position:   i,
			StartTime:  start,
			EndTime:    end,
			PriceCents: t.PriceCents,
			Weekdays:   days,
			IsActive:   true,
		}
		if t.IsActive != nil {
			tier.IsActive = *t.IsActive
		}
		tiers = append(tiers, tier)
	}
	court.Tiers = tiers
	if err := repository.ValidateCourt(court); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.Courts.ReplaceTiers(ctx, court.ID, tiers); err != nil {
		return storeError(c, err, "replace tiers failed")
	}
	updated, err := h.Courts.GetByID(ctx, court.ID)
	if err != nil {
		return storeError(c, err, "database error")
	}
	return c.JSON(http.StatusOK, ownerView(updated))
}

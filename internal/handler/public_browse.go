// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public browsing API: unauthenticated
// users can list courts and inspect the day's slot calendar. Sensitive
// fields (owner IDs, timestamps) are filtered from responses.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelora/court-reservation/internal/model"
	"github.com/avelora/court-reservation/internal/repository"
	"github.com/avelora/court-reservation/internal/schedule"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
	Courts       *repository.CourtRepo
	Reservations *repository.ReservationRepo
}

// PublicTier is a price tier exposed via the public API.
type PublicTier struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	PriceCents uint32 `json:"price_cents"`
	Weekdays   string `json:"weekdays"`
}

// PublicCourt is a court exposed via the public API. It contains only
// fields a customer needs to pick a court and understand its pricing.
type PublicCourt struct {
	ID                uint64       `json:"id"`
	Name              string       `json:"name"`
	OpenTime          string       `json:"open_time"`
	CloseTime         string       `json:"close_time"`
	DefaultPriceCents uint32       `json:"default_price_cents"`
	Tiers             []PublicTier `json:"tiers,omitempty"`
}

func publicCourt(c *model.Court) PublicCourt {
	out := PublicCourt{
		ID:                c.ID,
		Name:              c.Name,
		OpenTime:          c.OpenTime.String(),
		CloseTime:         c.CloseTime.String(),
		DefaultPriceCents: c.DefaultPriceCents,
	}
	for _, t := range c.Tiers {
		if !t.IsActive {
			continue
		}
		out.Tiers = append(out.Tiers, PublicTier{
			Start:      t.StartTime.String(),
			End:        t.EndTime.String(),
			PriceCents: t.PriceCents,
			Weekdays:   t.Weekdays.String(),
		})
	}
	return out
}

// GetCourts returns all active courts. Response JSON contains an "items"
// array of PublicCourt.
func (h *PublicHandler) GetCourts(c echo.Context) error {
	ctx := c.Request().Context()
	courts, err := h.Courts.ListActive(ctx)
	if err != nil {
		return storeError(c, err, "database error")
	}
	out := make([]PublicCourt, 0, len(courts))
	for i := range courts {
		out = append(out, publicCourt(&courts[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetCourt returns one court with its pricing tiers.
func (h *PublicHandler) GetCourt(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	court, err := h.Courts.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return storeError(c, err, "database error")
	}
	if !court.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
	}
	return c.JSON(http.StatusOK, publicCourt(court))
}

// GetAvailability returns the computed slot calendar for a court and date:
// every bookable hour with its resolved price and FREE/BUSY/PAST status.
// The date query parameter is required ("YYYY-MM-DD"). A failure reading
// existing reservations is reported as an error, never as a free calendar.
func (h *PublicHandler) GetAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date := c.QueryParam("date")
	if _, err := model.ParseDate(date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	court, err := h.Courts.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return storeError(c, err, "database error")
	}
	if !court.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
	}

	now := time.Now().UTC()
	// Sweep elapsed CONFIRMED reservations lazily; failures only delay the
	// COMPLETED flip and never block the read.
	_, _ = h.Reservations.CompleteElapsed(ctx, now)

	existing, err := h.Reservations.ListActiveByCourtDate(ctx, id, date)
	if err != nil {
		return storeError(c, err, "database error")
	}
	slots, err := schedule.ResolveAvailability(court, date, existing, now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"court_id": court.ID,
		"date":     date,
		"items":    slots,
	})
}

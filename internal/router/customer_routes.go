package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avelora/court-reservation/internal/handler"
	"github.com/avelora/court-reservation/internal/middleware"
)

// RegisterCustomer registers booking endpoints under /v1.  All routes
// require a valid JWT; owners may book slots too, so both roles are
// accepted.  Callers can book a slot, list and inspect their own
// reservations and cancel them.
func RegisterCustomer(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "OWNER"),
	)
	g.POST("/reservations", h.Create)
	g.GET("/my-reservations", h.ListMine)
	g.GET("/reservations/:id", h.Get)
	g.POST("/reservations/:id/confirm", h.Confirm)
	g.POST("/reservations/:id/cancel", h.Cancel)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avelora/court-reservation/internal/handler"
	"github.com/avelora/court-reservation/internal/middleware"
)

// RegisterOwner registers court management endpoints under /v1/owner.  All
// routes require a valid JWT and the OWNER role.  Owners manage their own
// courts and pricing tiers, inspect bookings on their courts and tune the
// booking policy.
func RegisterOwner(e *echo.Echo, oc *handler.OwnerHandler, or *handler.OwnerReservationHandler, op *handler.PolicyHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)
	g.POST("/courts", oc.CreateCourt)
	g.GET("/courts", oc.ListCourts)
	g.PUT("/courts/:id", oc.UpdateCourt)
	g.DELETE("/courts/:id", oc.DeactivateCourt)
	g.PUT("/courts/:id/tiers", oc.ReplaceTiers)

	g.GET("/courts/:id/reservations", or.ListByCourt)

	g.GET("/policy", op.GetPolicy)
	g.PUT("/policy", op.UpdatePolicy)
}

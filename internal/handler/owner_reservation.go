package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelora/court-reservation/internal/model"
	"github.com/avelora/court-reservation/internal/repository"
)

// OwnerReservationHandler lets owners inspect the bookings on their own
// courts. Customer identity is reduced to the user ID; owners never see
// customer emails here.
type OwnerReservationHandler struct {
	Reservations *repository.ReservationRepo
}

type ownerReservationView struct {
	reservationView
	UserID uint64 `json:"user_id"`
}

// ListByCourt returns reservations on one of the owner's courts. An
// optional date query parameter ("YYYY-MM-DD") restricts the listing to a
// single day; without it every reservation for the court is returned.
func (h *OwnerReservationHandler) ListByCourt(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courtID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date := c.QueryParam("date")
	if date != "" {
		if _, err := model.ParseDate(date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
	}

	ctx := c.Request().Context()
	_, _ = h.Reservations.CompleteElapsed(ctx, time.Now().UTC())

	list, err := h.Reservations.ListByCourtForOwner(ctx, courtID, uid, date)
	if err != nil {
		switch err {
		case repository.ErrCourtNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return storeError(c, err, "database error")
	}
	out := make([]ownerReservationView, 0, len(list))
	for i := range list {
		out = append(out, ownerReservationView{
			reservationView: viewOf(&list[i]),
			UserID:          list[i].UserID,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

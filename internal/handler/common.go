package handler

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user's ID set by the JWT middleware.
// JWT numeric claims decode as float64; tokens issued elsewhere may carry
// the subject as a string.
func getUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return v, true
	case float64:
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// storeError maps a storage failure to its HTTP response. Connection-class
// failures are transient and worth retrying, so they answer 503 with the
// store_unavailable kind; anything else answers 500 with msg.
func storeError(c echo.Context, err error, msg string) error {
	if isRetryableStoreErr(err) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error":   "store_unavailable",
			"message": "storage is temporarily unavailable, retry shortly",
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

// isRetryableStoreErr reports whether err is a connection-class store
// failure rather than a statement-level one: a bad or dropped pool
// connection, a deadline hit waiting on the store, or a network error
// reaching it.
func isRetryableStoreErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

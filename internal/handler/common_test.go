package handler

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRetryableStoreErrClassification(t *testing.T) {
	// Connection-class failures are worth retrying.
	assert.True(t, isRetryableStoreErr(driver.ErrBadConn))
	assert.True(t, isRetryableStoreErr(mysql.ErrInvalidConn))
	assert.True(t, isRetryableStoreErr(context.DeadlineExceeded))
	assert.True(t, isRetryableStoreErr(&net.OpError{Op: "dial", Err: errors.New("connection refused")}))
	assert.True(t, isRetryableStoreErr(fmt.Errorf("load courts: %w", driver.ErrBadConn)))

	// Statement-level failures are not.
	assert.False(t, isRetryableStoreErr(nil))
	assert.False(t, isRetryableStoreErr(sql.ErrNoRows))
	assert.False(t, isRetryableStoreErr(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, isRetryableStoreErr(errors.New("sql: converting argument")))
}

// A dropped store connection must answer 503 with the store_unavailable
// kind so clients know to retry; other store failures stay a plain 500.
func TestStoreErrorResponses(t *testing.T) {
	e := echo.New()

	newCtx := func() (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/v1/courts", nil)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	c, rec := newCtx()
	assert.NoError(t, storeError(c, driver.ErrBadConn, "database error"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "store_unavailable")
	assert.Contains(t, rec.Body.String(), "retry")

	c, rec = newCtx()
	assert.NoError(t, storeError(c, errors.New("sql: Scan error"), "database error"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "database error")
}

//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"warehouse-booking/internal/handler/middleware"
	"warehouse-booking/internal/pkg/errs"
	"warehouse-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler(3*time.Second))
	return r
}

func TestErrorHandler(t *testing.T) {
	t.Run("success: unrendered error is rendered by kind", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/x", func(c *gin.Context) {
			_ = c.Error(errs.Conflict(errs.New("unit already booked")))
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

		httptest.AssertErrorKind(t, rec, http.StatusConflict, "conflict")
		httptest.AssertErrorResponse(t, rec, http.StatusConflict, "unit already booked")
	})

	t.Run("success: transient error gets Retry-After", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/x", func(c *gin.Context) {
			_ = c.Error(errs.Transient(errs.New("could not serialize access")))
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

		httptest.AssertErrorKind(t, rec, http.StatusServiceUnavailable, "transient")
		httptest.AssertHeaders(t, rec, map[string]string{"Retry-After": "3"})
	})

	t.Run("success: bare abort status is kept", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/x", func(c *gin.Context) {
			c.AbortWithStatus(http.StatusTeapot)
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("success: written responses are untouched", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/x", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			_ = c.Error(errs.New("late"))
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("error: handler that writes nothing is a 500", func(t *testing.T) {
		r := newErrorRouter()
		r.GET("/x", func(c *gin.Context) {})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

		httptest.AssertErrorKind(t, rec, http.StatusInternalServerError, "")
	})
}

func TestCustomRecovery(t *testing.T) {
	r := newErrorRouter()
	r.GET("/boom", func(c *gin.Context) {
		panic("nil map write")
	})

	rec := httptest.PerformRequest(t, r, http.MethodGet, "/boom", nil, "")

	body := httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	assert.NotContains(t, body.Error.Message, "nil map")
	assert.False(t, body.HasDetail())
}

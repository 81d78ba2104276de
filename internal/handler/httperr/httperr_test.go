//go:build unit

package httperr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warehouse-booking/internal/handler/httperr"
	"warehouse-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error, retryAfter time.Duration) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	httperr.AbortWithKind(c, err, retryAfter)
	return rec
}

type body struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail *struct {
		Kind string `json:"kind"`
	} `json:"detail"`
}

func TestAbortWithKind(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantKind    string
	}{
		{"validation", errs.Validation(errs.New("end must be after start")), http.StatusBadRequest, "end must be after start", "validation"},
		{"not found", errs.NotFound(errs.New("reservation not found")), http.StatusNotFound, "reservation not found", "not_found"},
		{"conflict", errs.Conflict(errs.New("unit is already booked")), http.StatusConflict, "unit is already booked", "conflict"},
		{"state", errs.State(errs.New("transition not allowed")), http.StatusUnprocessableEntity, "transition not allowed", "state"},
		{"transient hides the cause", errs.Transient(errs.New("pq: connection refused")), http.StatusServiceUnavailable, "Service temporarily unavailable, please retry", "transient"},
		{"internal hides the cause", errs.New("nil pointer"), http.StatusInternalServerError, "Internal server error", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := render(t, errs.Wrap(tt.err, "usecase"), 0)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got body
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantMessage, got.Error.Message)
			if tt.wantKind == "" {
				assert.Nil(t, got.Detail)
				return
			}
			require.NotNil(t, got.Detail)
			assert.Equal(t, tt.wantKind, got.Detail.Kind)
		})
	}
}

func TestAbortWithKind_RetryAfter(t *testing.T) {
	t.Run("rounds up to whole seconds", func(t *testing.T) {
		rec := render(t, errs.Transient(errs.New("serialization failure")), 1500*time.Millisecond)

		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	})

	t.Run("omitted when unset", func(t *testing.T) {
		rec := render(t, errs.Transient(errs.New("serialization failure")), 0)

		assert.Empty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("never sent for other kinds", func(t *testing.T) {
		rec := render(t, errs.Conflict(errs.New("booked")), time.Second)

		assert.Empty(t, rec.Header().Get("Retry-After"))
	})
}

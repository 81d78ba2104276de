package api

import (
	"net/http"
	"time"

	"warehouse-booking/internal/handler/httperr"
	"warehouse-booking/internal/handler/middleware"
	"warehouse-booking/internal/pkg/config"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var errNoIdentity = errors.New("authenticated user missing from context")

// errorRenderer turns usecase errors into responses. RetryAfter is sent with
// 503 answers to transient store failures.
type errorRenderer struct {
	retryAfter time.Duration
}

func newErrorRenderer(cfg config.BookingConfig) errorRenderer {
	return errorRenderer{retryAfter: cfg.RetryAfter}
}

func (r errorRenderer) abort(c *gin.Context, err error) {
	httperr.AbortWithKind(c, err, r.retryAfter)
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func abortBind(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", details)
		return
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name+" format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoIdentity, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func abortMapping(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

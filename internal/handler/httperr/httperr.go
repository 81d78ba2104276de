package httperr

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"warehouse-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

const (
	msgTransient = "Service temporarily unavailable, please retry"
	msgInternal  = "Internal server error"
)

// StatusOf maps an error category to its HTTP status.
func StatusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindState:
		return http.StatusUnprocessableEntity
	case errs.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithKind renders err according to its category. Store and internal
// failures never expose their cause.
func AbortWithKind(c *gin.Context, err error, retryAfter time.Duration) {
	kind := errs.KindOf(err)
	status := StatusOf(kind)

	var msg string
	switch kind {
	case errs.KindTransient:
		if retryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		}
		msg = msgTransient
	case errs.KindInternal:
		msg = msgInternal
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 12))
	default:
		msg = errs.UserMessage(err)
	}

	var detail any
	if kind != errs.KindInternal {
		detail = gin.H{"kind": string(kind)}
	}
	AbortWithError(c, status, err, msg, detail)
}

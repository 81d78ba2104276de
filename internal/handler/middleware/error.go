package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"warehouse-booking/internal/handler/httperr"
	"warehouse-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes a body for handlers that left an error on the context
// without rendering one. Errors recorded by httperr carry their response in
// Meta; anything else is rendered by category.
func ErrorHandler(retryAfter time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if last := c.Errors.Last(); last != nil {
			if resp, ok := last.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
			httperr.AbortWithKind(c, last.Err, retryAfter)
			return
		}

		// bare c.AbortWithStatus from a middleware
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Writer.WriteHeaderNow()
			return
		}
		httperr.AbortWithKind(c, errs.Newf("%s %s produced no response", c.Request.Method, c.FullPath()), 0)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}
			slog.ErrorContext(c.Request.Context(), "recovered from panic",
				"panic", r,
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", c.Request.URL.Path)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			httperr.AbortWithKind(c, errs.Newf("panic: %v", r), 0)
		}()
		c.Next()
	}
}

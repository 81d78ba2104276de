package middleware

import (
	"log/slog"
	"net/http"

	"warehouse-booking/internal/domain/user"
	"warehouse-booking/internal/handler/httperr"
	"warehouse-booking/internal/pkg/cookie"
	"warehouse-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.BearerOrCookie(c)
		if token == "" {
			abortJSON(c, http.StatusUnauthorized, "Access token required")
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "token validation failed", "error", err.Error())
			abortJSON(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ctxUserIDKey, identity.UserID)
		c.Set(ctxUserRoleKey, identity.Role)
		c.Next()
	}
}

// RequireRoleAtLeast must be chained after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			abortJSON(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !role.AtLeast(minRole) {
			abortJSON(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

func abortJSON(c *gin.Context, status int, msg string) {
	resp := httperr.Response{Status: status}
	resp.Error.Message = msg
	c.AbortWithStatusJSON(status, resp)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

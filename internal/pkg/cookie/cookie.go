package cookie

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

// BearerOrCookie prefers the access token cookie and falls back to an
// Authorization: Bearer header.
func BearerOrCookie(c *gin.Context) string {
	if token := GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

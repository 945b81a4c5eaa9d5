package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/wexar/server/internal/errors"
)

const maxUserIDLength = 128

// resolves the caller's identity without requiring one.
// a bearer token wins when tokens are enabled; a bad token is rejected.
// otherwise the X-User-Id header is taken as is.
func IdentityMiddleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok && v.Enabled() {
			claims, err := v.ValidateJWT(token)
			if err != nil {
				errors.Unauthorized(c, "invalid or expired token")
				return
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextIdentitySource, SourceToken)
			c.Next()
			return
		}

		if userID := strings.TrimSpace(c.GetHeader(HeaderUserID)); userID != "" && len(userID) <= maxUserIDLength {
			c.Set(ContextUserID, userID)
			c.Set(ContextIdentitySource, SourceHeader)
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// extracts user_id from context after IdentityMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}

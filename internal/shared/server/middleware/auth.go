package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/auth"
	"jobtracker-backend/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	userNameKey = "userName"

	// LocalUserID identifies requests when auth is disabled in dev.
	LocalUserID = "local"
)

// AuthOptions configures the Auth middleware.
type AuthOptions struct {
	Signer *auth.Signer
	// Required rejects requests without a valid bearer token. When false
	// every request runs as LocalUserID.
	Required bool
	// PublicPaths bypass authentication (prefix match).
	PublicPaths []string
}

// Auth validates bearer JWTs and stores the identity in the gin context.
func Auth(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		for _, prefix := range opts.PublicPaths {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if !opts.Required {
			c.Set(userIDKey, LocalUserID)
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") || opts.Signer == nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := opts.Signer.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.Sub)
		if claims.Name != "" {
			c.Set(userNameKey, claims.Name)
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// UserNameFromContext fetches the display name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userNameKey)
}

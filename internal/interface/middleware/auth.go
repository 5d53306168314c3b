package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/receipegram/backend/pkg/helpers"
	"github.com/receipegram/backend/pkg/response"
)

// Context keys set by the auth middleware.
const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userName"
	CtxEmailKey    = "userEmail"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return token
}

// RequireAuth validates the bearer token and injects the caller's identity
// into the Gin context. Missing, malformed, expired, or wrongly signed
// tokens abort the request with 401 (fail-closed).
func RequireAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortMessage(c, http.StatusUnauthorized, "Access token required")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth injects the caller's identity when a valid bearer token is
// present and otherwise leaves the request anonymous. Verification failures
// degrade silently (fail-open); this middleware never aborts. Read endpoints
// use it purely to personalize output.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.Parse(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *helpers.Claims) {
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxUsernameKey, claims.Username)
	c.Set(CtxEmailKey, claims.Email)
}

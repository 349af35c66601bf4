package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userRoleKey  = "userRole"
	userEmailKey = "userEmail"
	userNameKey  = "userName"

	legacyTokenHeader = "x-auth-token"
)

// TokenVerifier resolves a bearer credential to a caller identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Auth rejects requests without a valid token and stores the caller identity
// in the gin context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		token, ok := extractToken(c)
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "No token, authorization denied", nil)
			return
		}

		id, err := verifier.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Token is not valid", nil)
			return
		}

		c.Set(userIDKey, id.UserID)
		c.Set(userRoleKey, id.Role)
		if id.Email != "" {
			c.Set(userEmailKey, id.Email)
		}
		if id.Name != "" {
			c.Set(userNameKey, id.Name)
		}
		c.Next()
	}
}

// RequireAdmin must run after Auth. Non-admin callers get 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFromContext(c).IsAdmin() {
			respond.Error(c, http.StatusUnauthorized, "forbidden", "Not authorized as admin", nil)
			return
		}
		c.Next()
	}
}

// extractToken reads "Authorization: Bearer <t>" (scheme case-insensitive) and
// falls back to the legacy x-auth-token header when no bearer credential is sent.
func extractToken(c *gin.Context) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(token)
		return token, token != ""
	}
	token = strings.TrimSpace(c.GetHeader(legacyTokenHeader))
	return token, token != ""
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return stringFromContext(c, userIDKey)
}

// IdentityFromContext rebuilds the caller identity set by the auth middleware.
func IdentityFromContext(c *gin.Context) auth.Identity {
	return auth.Identity{
		UserID: stringFromContext(c, userIDKey),
		Role:   stringFromContext(c, userRoleKey),
		Email:  stringFromContext(c, userEmailKey),
		Name:   stringFromContext(c, userNameKey),
	}
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/response"
	"library-catalog/pkg/jwt"
)

// Context keys set by AuthMiddleware
const (
	CtxUserID = "userID"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// AuthMiddleware verifies "Authorization: Bearer <token>" and puts the
// claims into the gin context.
func AuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		// 2. "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		// 3. Verify
		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil || claims.UserID == "" {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated caller id ("" before AuthMiddleware).
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// IsAdmin reports the caller's role claim.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(CtxRole) == "admin"
}

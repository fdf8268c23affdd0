package middleware

import (
	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/response"
)

// AdminMiddleware checks if user has admin role
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Forbidden(c, apperror.MsgAdminOnly)
			return
		}
		c.Next()
	}
}

// SelfOrAdmin lets the request through when the :param user id is the caller
// or the caller is an admin.
func SelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) || c.Param(param) == UserID(c) {
			c.Next()
			return
		}
		response.Forbidden(c, apperror.ErrNotOwner.Error())
	}
}

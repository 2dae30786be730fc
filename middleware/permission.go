package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/models"
)

// CheckAdminPermissionMiddleware aborts requests whose session role is not
// admin.
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("Role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "no permission",
			})
			c.Abort()
			return
		}
		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "no permission",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

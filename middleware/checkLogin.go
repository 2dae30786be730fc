package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckLoginMiddleware aborts requests that carry no verified session.
func CheckLoginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, exists := c.Get("Email")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "not signed in",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

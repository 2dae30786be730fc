package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"sweetshop/jwt"
)

// AuthMiddleware reads the Bearer token if one is present and puts the
// session identity on the context. Requests without a valid token pass
// through anonymously; the stricter middlewares decide what needs login.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" {
			c.Next()
			return
		}

		email, role, err := jwt.VerifyToken(jwtSecret, token)
		if err != nil {
			log.Printf("token verification failed: %v", err)
			c.Next()
			return
		}

		c.Set("Email", email)
		c.Set("Role", role)
		c.Next()
	}
}

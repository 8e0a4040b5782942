package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smartfarm-assistant/pkg/response"
)

// Auth checks the Authorization header against the configured API token.
// When no token is configured the check is skipped.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.apiToken == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token != m.apiToken {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartfarm-assistant/pkg/response"
)

// RateLimit throttles requests with a process-wide token bucket.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}

		if !m.limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: throttled %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Resp{
				ErrorCode: http.StatusTooManyRequests,
				Message:   "Too many requests",
			})
			return
		}
		c.Next()
	}
}

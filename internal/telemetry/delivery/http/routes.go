package http

import "github.com/gin-gonic/gin"

// MapTelemetryRoutes mounts the telemetry endpoints on the given group.
func MapTelemetryRoutes(r *gin.RouterGroup, h Handler) {
	r.GET("/realtime", h.Realtime)
	r.GET("/history", h.History)
}

package http

import "github.com/gin-gonic/gin"

// MapDeviceRoutes mounts the device endpoints on the given group.
func MapDeviceRoutes(r *gin.RouterGroup, h Handler) {
	r.GET("", h.List)
	r.POST("/on", h.TurnOn)
	r.POST("/off", h.TurnOff)
}

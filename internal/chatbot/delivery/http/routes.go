package http

import "github.com/gin-gonic/gin"

// MapChatbotRoutes mounts the chatbot endpoints on the given group.
func MapChatbotRoutes(r *gin.RouterGroup, h Handler) {
	r.POST("", h.Resolve)
}

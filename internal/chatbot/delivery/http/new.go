package http

import (
	"github.com/gin-gonic/gin"

	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/pkg/log"
)

type Handler interface {
	Resolve(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc chatbot.UseCase
}

func New(l log.Logger, uc chatbot.UseCase) Handler {
	return handler{l: l, uc: uc}
}

package telegram

import (
	"github.com/gin-gonic/gin"

	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/pkg/log"
	pkgTelegram "smartfarm-assistant/pkg/telegram"
)

// Handler receives Telegram webhook updates and answers through the bot.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l   log.Logger
	uc  chatbot.UseCase
	bot *pkgTelegram.Bot
}

func New(l log.Logger, uc chatbot.UseCase, bot *pkgTelegram.Bot) Handler {
	return &handler{l: l, uc: uc, bot: bot}
}

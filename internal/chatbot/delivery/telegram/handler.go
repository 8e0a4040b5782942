package telegram

import (
	"context"

	"github.com/gin-gonic/gin"

	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/pkg/response"
	pkgTelegram "smartfarm-assistant/pkg/telegram"
)

// HandleWebhook acknowledges the update immediately and resolves the message
// in the background: the resolution pipeline may call the generative model,
// which can exceed Telegram's webhook deadline.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "chatbot.delivery.telegram.HandleWebhook: parse update: %v", err)
		response.Error(c, err, nil)
		return
	}

	if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
		response.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	go func() {
		// The request context is cancelled once the 200 goes out.
		bgCtx := context.Background()
		h.processMessage(bgCtx, msg)
	}()

	response.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) {
	switch msg.Text {
	case "/start":
		if err := h.bot.SendMessage(msg.Chat.ID,
			"👋 Chào mừng đến với SmartFarm Assistant!\n\nBạn có thể hỏi về cảm biến (nhiệt độ, độ ẩm, mực nước...), điều khiển thiết bị (bật/tắt đèn, máy bơm) hoặc hỏi thông tin về hệ thống."); err != nil {
			h.l.Errorf(ctx, "chatbot.delivery.telegram.processMessage: send welcome: %v", err)
		}
		return
	case "/help":
		if err := h.bot.SendMessage(msg.Chat.ID,
			"Ví dụ:\n• \"nhiệt độ hiện tại\"\n• \"độ ẩm đất 5 phút trước\"\n• \"bật máy bơm\"\n• \"tần suất cập nhật dữ liệu là gì?\""); err != nil {
			h.l.Errorf(ctx, "chatbot.delivery.telegram.processMessage: send help: %v", err)
		}
		return
	}

	out, err := h.uc.Resolve(ctx, chatbot.ResolveInput{Message: msg.Text})
	if err != nil {
		h.l.Errorf(ctx, "chatbot.delivery.telegram.processMessage: resolve: %v", err)
		if err := h.bot.SendMessage(msg.Chat.ID, "Có lỗi xảy ra khi xử lý yêu cầu của bạn, vui lòng thử lại."); err != nil {
			h.l.Errorf(ctx, "chatbot.delivery.telegram.processMessage: send error notice: %v", err)
		}
		return
	}

	if err := h.bot.SendMessage(msg.Chat.ID, out.Reply); err != nil {
		h.l.Errorf(ctx, "chatbot.delivery.telegram.processMessage: send reply: %v", err)
	}
}

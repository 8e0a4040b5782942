package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/pkg/response"
)

var errMissingMessage = errors.New("Thiếu trường `message` trong body")

// Resolve godoc
// @Summary      Resolve a chatbot message
// @Description  Detects language and intent, then answers a sensor, control, or info request.
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        body body resolveRequest true "User message"
// @Success      200 {object} response.Resp{data=resolveResponse}
// @Failure      400 {object} response.Resp
// @Router       /api/v1/chatbot [post]
func (h handler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "chatbot.delivery.http.Resolve: bind: %v", err)
		response.Error(c, errMissingMessage, nil)
		return
	}

	out, err := h.uc.Resolve(ctx, chatbot.ResolveInput{
		Message:        req.Message,
		SensorData:     model.Record(req.SensorData),
		IncludeSensors: req.IncludeSensors,
	})
	if err != nil {
		if errors.Is(err, chatbot.ErrEmptyMessage) {
			response.Error(c, errMissingMessage, nil)
			return
		}
		h.l.Errorf(ctx, "chatbot.delivery.http.Resolve: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newResolveResponse(out))
}

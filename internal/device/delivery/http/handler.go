package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"smartfarm-assistant/internal/device"
	"smartfarm-assistant/pkg/log"
	"smartfarm-assistant/pkg/response"
)

type Handler interface {
	List(c *gin.Context)
	TurnOn(c *gin.Context)
	TurnOff(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc device.UseCase
}

func New(l log.Logger, uc device.UseCase) Handler {
	return handler{l: l, uc: uc}
}

type setStateRequest struct {
	Name string `json:"name"`
}

// List godoc
// @Summary      Registered devices with state
// @Tags         device
// @Produce      json
// @Success      200 {object} response.Resp
// @Router       /api/v1/devices [get]
func (h handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.uc.List(ctx)
	if err != nil {
		h.l.Errorf(ctx, "device.delivery.http.List: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, list)
}

// TurnOn godoc
// @Summary      Switch a device on
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body body setStateRequest true "Device name"
// @Success      200 {object} response.Resp
// @Router       /api/v1/devices/on [post]
func (h handler) TurnOn(c *gin.Context) {
	h.setState(c, true)
}

// TurnOff godoc
// @Summary      Switch a device off
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body body setStateRequest true "Device name"
// @Success      200 {object} response.Resp
// @Router       /api/v1/devices/off [post]
func (h handler) TurnOff(c *gin.Context) {
	h.setState(c, false)
}

func (h handler) setState(c *gin.Context, on bool) {
	ctx := c.Request.Context()

	var req setStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, device.ErrNameRequired, nil)
		return
	}

	status, err := h.uc.SetState(ctx, req.Name, on)
	if err != nil {
		switch {
		case errors.Is(err, device.ErrNameRequired):
			response.Error(c, err, nil)
		case errors.Is(err, device.ErrNotFound):
			response.NotFound(c, err.Error())
		default:
			h.l.Errorf(ctx, "device.delivery.http.setState: %v", err)
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, status)
}

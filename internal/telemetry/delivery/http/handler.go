package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartfarm-assistant/internal/telemetry"
	"smartfarm-assistant/pkg/log"
	"smartfarm-assistant/pkg/response"
)

type Handler interface {
	Realtime(c *gin.Context)
	History(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc telemetry.UseCase
}

func New(l log.Logger, uc telemetry.UseCase) Handler {
	return handler{l: l, uc: uc}
}

// Realtime godoc
// @Summary      Live sensor snapshot
// @Tags         telemetry
// @Produce      json
// @Param        getBy query string false "Restrict to one sensor key"
// @Success      200 {object} response.Resp
// @Router       /api/v1/telemetry/realtime [get]
func (h handler) Realtime(c *gin.Context) {
	ctx := c.Request.Context()

	record, err := h.uc.Realtime(ctx, telemetry.RealtimeInput{GetBy: c.Query("getBy")})
	if err != nil {
		if errors.Is(err, telemetry.ErrUnknownField) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "telemetry.delivery.http.Realtime: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, record)
}

// History godoc
// @Summary      Stored sensor readings
// @Tags         telemetry
// @Produce      json
// @Param        sortBy   query string false "asc or desc"
// @Param        from     query string false "RFC 3339 lower bound"
// @Param        to       query string false "RFC 3339 upper bound"
// @Param        pageNum  query int    false "Page number, paired with pageSize"
// @Param        pageSize query int    false "Page size, paired with pageNum"
// @Success      200 {object} response.Resp
// @Router       /api/v1/telemetry/history [get]
func (h handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	ip := telemetry.HistoryInput{SortBy: c.Query("sortBy")}

	var err error
	if ip.From, err = parseTimeQuery(c, "from"); err != nil {
		response.Error(c, err, nil)
		return
	}
	if ip.To, err = parseTimeQuery(c, "to"); err != nil {
		response.Error(c, err, nil)
		return
	}
	if ip.PageNum, err = parseIntQuery(c, "pageNum"); err != nil {
		response.Error(c, err, nil)
		return
	}
	if ip.PageSize, err = parseIntQuery(c, "pageSize"); err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.History(ctx, ip)
	if err != nil {
		if errors.Is(err, telemetry.ErrInvalidPaging) ||
			errors.Is(err, telemetry.ErrInvalidSort) ||
			errors.Is(err, telemetry.ErrInvalidRange) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "telemetry.delivery.http.History: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"records":  out.Records,
		"pageNum":  out.PageNum,
		"pageSize": out.PageSize,
	})
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.New(key + " must be RFC 3339")
	}
	return &ts, nil
}

func parseIntQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}

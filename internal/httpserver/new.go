package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	chatbotHTTP "smartfarm-assistant/internal/chatbot/delivery/http"
	tgDelivery "smartfarm-assistant/internal/chatbot/delivery/telegram"
	deviceHTTP "smartfarm-assistant/internal/device/delivery/http"
	"smartfarm-assistant/internal/middleware"
	telemetryHTTP "smartfarm-assistant/internal/telemetry/delivery/http"
	"smartfarm-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware

	// Domain handlers
	chatbotHandler   chatbotHTTP.Handler
	telemetryHandler telemetryHTTP.Handler
	deviceHandler    deviceHTTP.Handler

	// Telegram webhook
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// API protection
	APIToken       string
	RateLimitRPS   float64
	RateLimitBurst int

	// Domain handlers
	ChatbotHandler   chatbotHTTP.Handler
	TelemetryHandler telemetryHTTP.Handler
	DeviceHandler    deviceHTTP.Handler

	// Telegram webhook
	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                logger,
		gin:              gin.Default(),
		port:             cfg.Port,
		mode:             cfg.Mode,
		environment:      cfg.Environment,
		mw:               middleware.New(logger, cfg.APIToken, cfg.RateLimitRPS, cfg.RateLimitBurst),
		chatbotHandler:   cfg.ChatbotHandler,
		telemetryHandler: cfg.TelemetryHandler,
		deviceHandler:    cfg.DeviceHandler,
		telegramHandler:  cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatbotHandler == nil {
		return errors.New("chatbot handler is required")
	}
	return nil
}

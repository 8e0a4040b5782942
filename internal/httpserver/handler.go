package httpserver

import (
	"context"

	"smartfarm-assistant/internal/model"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatbotHTTP "smartfarm-assistant/internal/chatbot/delivery/http"
	deviceHTTP "smartfarm-assistant/internal/device/delivery/http"
	telemetryHTTP "smartfarm-assistant/internal/telemetry/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestID())
	srv.gin.Use(srv.mw.RateLimit())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1", srv.mw.Auth())

	chatbotHTTP.MapChatbotRoutes(api.Group("/chatbot"), srv.chatbotHandler)
	srv.l.Infof(ctx, "Chatbot routes registered at /api/v1/chatbot")

	if srv.telemetryHandler != nil {
		telemetryHTTP.MapTelemetryRoutes(api.Group("/telemetry"), srv.telemetryHandler)
		srv.l.Infof(ctx, "Telemetry routes registered at /api/v1/telemetry")
	}

	if srv.deviceHandler != nil {
		deviceHTTP.MapDeviceRoutes(api.Group("/devices"), srv.deviceHandler)
		srv.l.Infof(ctx, "Device routes registered at /api/v1/devices")
	}

	if srv.telegramHandler != nil {
		srv.gin.POST("/webhook/telegram", srv.telegramHandler.HandleWebhook)
		srv.l.Infof(ctx, "Telegram webhook route registered at POST /webhook/telegram")
	} else {
		srv.l.Infof(ctx, "Telegram handler not configured, skipping webhook route")
	}

	return nil
}

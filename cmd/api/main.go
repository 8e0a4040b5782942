package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smartfarm-assistant/config"
	_ "smartfarm-assistant/docs" // Swagger docs
	"smartfarm-assistant/internal/catalog"
	chatbotHTTP "smartfarm-assistant/internal/chatbot/delivery/http"
	tgDelivery "smartfarm-assistant/internal/chatbot/delivery/telegram"
	chatbotUC "smartfarm-assistant/internal/chatbot/usecase"
	deviceHTTP "smartfarm-assistant/internal/device/delivery/http"
	deviceUC "smartfarm-assistant/internal/device/usecase"
	"smartfarm-assistant/internal/httpserver"
	"smartfarm-assistant/internal/repository/file"
	"smartfarm-assistant/internal/repository/firebase"
	telemetryHTTP "smartfarm-assistant/internal/telemetry/delivery/http"
	telemetryUC "smartfarm-assistant/internal/telemetry/usecase"
	"smartfarm-assistant/pkg/gemini"
	"smartfarm-assistant/pkg/llm"
	"smartfarm-assistant/pkg/log"
	"smartfarm-assistant/pkg/telegram"
	"smartfarm-assistant/pkg/timectx"
)

// @title       SmartFarm Assistant API
// @description Vietnamese/English chatbot for a smart farm: sensor queries, device control, and farm knowledge over Firebase telemetry.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration (.env is optional, config.yaml + env vars are the source of truth)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting SmartFarm Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Firebase repositories
	fbClient, err := firebase.NewClient(ctx, firebase.Config{
		ProjectID:         cfg.Firebase.ProjectID,
		DatabaseURL:       cfg.Firebase.DatabaseURL,
		CredentialsFile:   cfg.Firebase.CredentialsFile,
		SensorPath:        cfg.Firebase.SensorPath,
		ControlPath:       cfg.Firebase.ControlPath,
		HistoryCollection: cfg.Firebase.HistoryCollection,
		DeviceCollection:  cfg.Firebase.DeviceCollection,
		TimeField:         cfg.Firebase.TimeField,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize Firebase client: ", err)
		return
	}

	telemetryRepo := firebase.NewTelemetryRepository(logger, fbClient)
	deviceRepo := firebase.NewDeviceRepository(logger, fbClient)
	actuatorRepo := firebase.NewActuatorRepository(logger, fbClient)
	topicRepo := file.NewTopicRepository(cfg.Chatbot.TopicsFile)

	// 4. LLM provider chain
	llmManager, err := buildLLMManager(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}

	// 5. Time-context parser
	timeParser, err := timectx.NewParser(cfg.Chatbot.Timezone, rollbackOptions(ctx, logger, cfg.Chatbot.FutureRollback)...)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Chatbot.Timezone, err)
		timeParser, _ = timectx.NewParser("UTC")
	}

	// 6. Chatbot domain
	chatbotUseCase := chatbotUC.New(
		logger,
		llmManager,
		telemetryRepo,
		deviceRepo,
		actuatorRepo,
		topicRepo,
		catalog.DefaultSensors(),
		timeParser,
	)
	chatbotHandler := chatbotHTTP.New(logger, chatbotUseCase)

	// 7. Telemetry and device domains
	telemetryHandler := telemetryHTTP.New(logger, telemetryUC.New(logger, telemetryRepo, catalog.DefaultSensors()))
	deviceHandler := deviceHTTP.New(logger, deviceUC.New(logger, deviceRepo, actuatorRepo))

	// 8. Telegram webhook (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, chatbotUseCase, telegramBot)

		if cfg.Telegram.WebhookURL != "" {
			if whErr := telegramBot.SetWebhook(cfg.Telegram.WebhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s", cfg.Telegram.WebhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		APIToken:         cfg.Auth.APIToken,
		RateLimitRPS:     cfg.Auth.RateLimitRPS,
		RateLimitBurst:   cfg.Auth.RateLimitBurst,
		ChatbotHandler:   chatbotHandler,
		TelemetryHandler: telemetryHandler,
		DeviceHandler:    deviceHandler,
		TelegramHandler:  telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// buildLLMManager turns the configured provider list into a fallback chain,
// highest priority first.
func buildLLMManager(ctx context.Context, cfg *config.Config, logger log.Logger) (*llm.Manager, error) {
	providerCfgs := make([]config.ProviderConfig, 0, len(cfg.LLM.Providers))
	for _, p := range cfg.LLM.Providers {
		if p.Enabled {
			providerCfgs = append(providerCfgs, p)
		}
	}
	sort.Slice(providerCfgs, func(i, j int) bool {
		return providerCfgs[i].Priority < providerCfgs[j].Priority
	})

	var providers []llm.Provider
	for _, p := range providerCfgs {
		switch p.Name {
		case "gemini":
			client, err := gemini.New(gemini.Config{
				APIKey: p.APIKey,
				Model:  p.Model,
			})
			if err != nil {
				return nil, fmt.Errorf("gemini provider: %w", err)
			}
			providers = append(providers, llm.NewGeminiAdapter(client))
		case "openai":
			providers = append(providers, llm.NewOpenAIAdapter(p.APIKey, p.BaseURL, p.Model))
		default:
			logger.Warnf(ctx, "Unknown LLM provider %q, skipping", p.Name)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no usable LLM providers after filtering")
	}

	retryDelay, err := time.ParseDuration(cfg.LLM.RetryDelay)
	if err != nil {
		retryDelay = time.Second
	}
	maxTotal, err := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	if err != nil {
		maxTotal = 60 * time.Second
	}

	return llm.NewManager(providers, &llm.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, logger), nil
}

func rollbackOptions(ctx context.Context, logger log.Logger, raw string) []timectx.Option {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warnf(ctx, "Invalid chatbot.future_rollback %q, using default: %v", raw, err)
		return nil
	}
	return []timectx.Option{timectx.WithFutureRollback(d)}
}

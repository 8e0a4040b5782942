package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"smartfarm-assistant/internal/catalog"
	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/internal/repository"
	"smartfarm-assistant/pkg/llm"
	"smartfarm-assistant/pkg/log"
	"smartfarm-assistant/pkg/timectx"
)

const (
	deviceCacheTTL = 5 * time.Minute
	topicCacheTTL  = 10 * time.Minute
)

type implUseCase struct {
	l          log.Logger
	llm        *llm.Manager
	telemetry  repository.Telemetry
	devices    repository.Devices
	actuators  repository.Actuators
	topics     repository.Topics
	sensors    catalog.Sensors
	builtins   []catalog.Device
	timeParser *timectx.Parser

	deviceCache *expirable.LRU[string, []catalog.Device]
	topicCache  *expirable.LRU[string, map[string][]string]
}

// New wires the resolution pipeline with its storage ports, the generative
// model chain, and the injected sensor/device catalogs.
func New(
	l log.Logger,
	llmManager *llm.Manager,
	telemetry repository.Telemetry,
	devices repository.Devices,
	actuators repository.Actuators,
	topics repository.Topics,
	sensors catalog.Sensors,
	timeParser *timectx.Parser,
) chatbot.UseCase {
	return &implUseCase{
		l:           l,
		llm:         llmManager,
		telemetry:   telemetry,
		devices:     devices,
		actuators:   actuators,
		topics:      topics,
		sensors:     sensors,
		builtins:    catalog.BuiltinDevices(),
		timeParser:  timeParser,
		deviceCache: expirable.NewLRU[string, []catalog.Device](1, nil, deviceCacheTTL),
		topicCache:  expirable.NewLRU[string, map[string][]string](1, nil, topicCacheTTL),
	}
}

package usecase

import (
	"context"
	"strings"

	"smartfarm-assistant/internal/catalog"
	"smartfarm-assistant/pkg/vntext"
)

// sanitizeJSONResponse strips markdown code fences the model tends to wrap
// around JSON, then cuts the payload down to the outermost object.
func sanitizeJSONResponse(response string) string {
	sanitized := strings.TrimSpace(response)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimPrefix(sanitized, "```")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.TrimSpace(sanitized)

	start := strings.Index(sanitized, "{")
	end := strings.LastIndex(sanitized, "}")
	if start >= 0 && end > start {
		sanitized = sanitized[start : end+1]
	}
	return sanitized
}

// normalizeIdentifier canonicalizes a model-returned target for catalog
// matching: diacritics stripped, lowercased, inner whitespace collapsed out.
func normalizeIdentifier(s string) string {
	return strings.ReplaceAll(vntext.Normalize(s), " ", "")
}

// containsFailureMarker reports whether a first-pass reply looks unsatisfying
// and should be escalated.
func containsFailureMarker(reply string) bool {
	if strings.TrimSpace(reply) == "" {
		return true
	}
	normalized := vntext.Normalize(reply)
	for _, marker := range failureMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

// deviceCatalog returns builtins merged with store-registered devices. The
// registry read is cached briefly; on a read failure the builtins still work.
func (uc implUseCase) deviceCatalog(ctx context.Context) []catalog.Device {
	if cached, ok := uc.deviceCache.Get("devices"); ok {
		return cached
	}

	registered, err := uc.devices.ListActive(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "chatbot.usecase.deviceCatalog: list active devices: %v", err)
		return uc.builtins
	}

	merged := catalog.MergeDevices(uc.builtins, registered)
	uc.deviceCache.Add("devices", merged)
	return merged
}

// topicCatalog loads the grounding document, cached briefly.
func (uc implUseCase) topicCatalog(ctx context.Context) (map[string][]string, error) {
	if cached, ok := uc.topicCache.Get("topics"); ok {
		return cached, nil
	}

	topics, err := uc.topics.Load(ctx)
	if err != nil {
		return nil, err
	}
	uc.topicCache.Add("topics", topics)
	return topics, nil
}

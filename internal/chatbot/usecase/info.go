package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"smartfarm-assistant/pkg/vntext"
)

// resolveInfo answers a reference question grounded in the topic document:
// classify against the catalog, honor the cadence-keyword override, then
// generate an answer restricted to the matched topic's facts.
func (uc implUseCase) resolveInfo(ctx context.Context, message string, texts []string, lang vntext.Language) string {
	topics, err := uc.topicCatalog(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "chatbot.usecase.resolveInfo: load topics: %v", err)
		return tr(lang,
			"Không đọc được tài liệu hướng dẫn của hệ thống, vui lòng thử lại sau.",
			"The system knowledge base could not be read, please try again later.")
	}

	category := uc.classifyTopic(ctx, message, topics)

	// Cadence questions go straight to the system-operation topic no matter
	// what the classifier said.
	if vntext.ContainsAny(texts, cadenceKeywords...) {
		if _, ok := topics[topicSystemOperation]; ok {
			category = topicSystemOperation
		}
	}

	facts, ok := topics[category]
	if !ok {
		return tr(lang,
			"Mình chưa có thông tin về chủ đề này, vui lòng nói rõ hơn bạn muốn hỏi gì.",
			"I have no information on that topic yet, please clarify what you want to know.")
	}

	prompt := fmt.Sprintf(promptGroundedAnswer, strings.Join(facts, "\n"), message)
	answer, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		uc.l.Warnf(ctx, "chatbot.usecase.resolveInfo: grounded answer: %v", err)
		// Raw facts are still a correct, if dry, answer.
		return strings.Join(facts, "\n")
	}
	return answer
}

// classifyTopic runs the strict-JSON topic classification and returns the
// accepted category, or "" when nothing clears the confidence floor.
func (uc implUseCase) classifyTopic(ctx context.Context, message string, topics map[string][]string) string {
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)

	prompt := fmt.Sprintf(promptClassifyTopic, strings.Join(names, ", "), message)
	raw, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		uc.l.Warnf(ctx, "chatbot.usecase.classifyTopic: generate: %v", err)
		return ""
	}

	var classification struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(raw)), &classification); err != nil {
		uc.l.Warnf(ctx, "chatbot.usecase.classifyTopic: decode: %v", err)
		return ""
	}

	if classification.Confidence < classificationConfidenceFloor {
		uc.l.Debugf(ctx, "chatbot.usecase.classifyTopic: low confidence %.2f for %q",
			classification.Confidence, classification.Category)
		return ""
	}
	if _, ok := topics[classification.Category]; !ok {
		return ""
	}
	return classification.Category
}

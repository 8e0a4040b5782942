package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/pkg/vntext"
)

// Resolve is the single entry point: detect language, classify intent,
// dispatch to the matching resolver, and escalate unsatisfying sensor replies
// to the generative model.
func (uc implUseCase) Resolve(ctx context.Context, ip chatbot.ResolveInput) (chatbot.ResolveOutput, error) {
	message := strings.TrimSpace(ip.Message)
	if message == "" {
		return chatbot.ResolveOutput{}, chatbot.ErrEmptyMessage
	}

	lang := vntext.Detect(message)
	texts := vntext.Variants(message, lang)
	intent := uc.classifyIntent(texts)

	uc.l.Infof(ctx, "chatbot.usecase.Resolve: intent=%s lang=%s", intent, lang)

	var reply string
	switch intent {
	case model.IntentControl:
		reply = uc.resolveControl(ctx, message, texts, lang)
	case model.IntentSensor:
		reply = uc.resolveSensorQuery(ctx, ip, texts, lang)
		if containsFailureMarker(reply) {
			reply = uc.escalate(ctx, message, lang)
		}
	case model.IntentInfo:
		reply = uc.resolveInfo(ctx, message, texts, lang)
	default:
		reply = uc.answerFreeForm(ctx, ip, message)
	}

	return chatbot.ResolveOutput{
		Reply:    reply,
		Language: lang,
		Intent:   intent,
	}, nil
}

// escalate re-asks the generative model with the full assistant briefing after
// a first-pass reply tripped a failure marker.
func (uc implUseCase) escalate(ctx context.Context, message string, lang vntext.Language) string {
	answer, err := uc.llm.Generate(ctx, fmt.Sprintf(promptEscalate, message))
	if err != nil {
		uc.l.Warnf(ctx, "chatbot.usecase.escalate: %v", err)
		return tr(lang,
			"Xin lỗi, mình chưa hiểu rõ yêu cầu. Bạn có thể hỏi về cảm biến (nhiệt độ, độ ẩm...), điều khiển thiết bị (bật/tắt đèn, máy bơm) hoặc thông tin hệ thống.",
			"Sorry, I did not quite get that. You can ask about sensors (temperature, humidity...), control devices (turn the light or pump on/off), or ask about the system.")
	}
	return answer
}

// answerFreeForm handles the unknown intent with an unscoped model call,
// optionally grounded on the live sensor snapshot.
func (uc implUseCase) answerFreeForm(ctx context.Context, ip chatbot.ResolveInput, message string) string {
	prompt := fmt.Sprintf(promptFreeForm, message)

	if ip.IncludeSensors {
		snapshot := ip.SensorData
		if len(snapshot) == 0 {
			if latest, err := uc.telemetry.Latest(ctx); err == nil {
				snapshot = latest
			}
		}
		if len(snapshot) > 0 {
			if raw, err := json.Marshal(snapshot); err == nil {
				prompt += fmt.Sprintf(promptSensorContext, string(raw))
			}
		}
	}

	answer, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		uc.l.Warnf(ctx, "chatbot.usecase.answerFreeForm: %v", err)
		return "Xin lỗi, mình đang gặp sự cố khi trả lời. Bạn vui lòng thử lại sau nhé."
	}
	return answer
}

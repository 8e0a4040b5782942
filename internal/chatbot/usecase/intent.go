package usecase

import (
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/pkg/vntext"
)

// classifyIntent applies the priority order control > sensor > info > unknown.
// A control verb plus a device noun always wins, so "bật máy bơm" can never be
// read as a sensor query even though "máy bơm" is also a sensor keyword.
func (uc implUseCase) classifyIntent(texts []string) model.Intent {
	hasVerb := vntext.ContainsAnyWord(texts, onVerbs...) || vntext.ContainsAnyWord(texts, offVerbs...)
	hasDevice := vntext.ContainsAny(texts, deviceKeywords...)
	hasSensor := vntext.ContainsAny(texts, sensorKeywords...)
	hasInfo := vntext.ContainsAny(texts, infoKeywords...)

	switch {
	case hasVerb && hasDevice:
		return model.IntentControl
	case hasSensor || hasDevice:
		return model.IntentSensor
	case hasInfo:
		return model.IntentInfo
	default:
		return model.IntentUnknown
	}
}

package chatbot

import (
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/pkg/vntext"
)

type ResolveInput struct {
	Message        string
	SensorData     model.Record
	IncludeSensors bool
}

type ResolveOutput struct {
	Reply    string
	Language vntext.Language
	Intent   model.Intent
}

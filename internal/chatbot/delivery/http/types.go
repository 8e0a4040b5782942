package http

import "smartfarm-assistant/internal/chatbot"

type resolveRequest struct {
	Message        string         `json:"message"`
	SensorData     map[string]any `json:"sensorData"`
	IncludeSensors bool           `json:"includeSensors"`
}

type resolveResponse struct {
	Reply    string `json:"reply"`
	Language string `json:"language"`
	Intent   string `json:"intent"`
}

func newResolveResponse(out chatbot.ResolveOutput) resolveResponse {
	return resolveResponse{
		Reply:    out.Reply,
		Language: string(out.Language),
		Intent:   string(out.Intent),
	}
}

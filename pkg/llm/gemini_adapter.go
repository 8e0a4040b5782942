package llm

import (
	"context"

	"smartfarm-assistant/pkg/gemini"
)

// GeminiAdapter adapts pkg/gemini to the llm.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements the Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		Messages:    make([]gemini.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	if req.SystemInstruction != nil {
		geminiReq.SystemInstruction = &gemini.Content{
			Parts: toGeminiParts(req.SystemInstruction.Parts),
		}
	}

	for i, msg := range req.Messages {
		geminiReq.Messages[i] = gemini.Content{
			Role:  msg.Role,
			Parts: toGeminiParts(msg.Parts),
		}
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}

	parts := make([]Part, len(resp.Content.Parts))
	for i, p := range resp.Content.Parts {
		parts[i] = Part{Text: p.Text}
	}

	return &Response{
		Content:      Message{Role: resp.Content.Role, Parts: parts},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
	}, nil
}

// Name returns the provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns the model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func toGeminiParts(parts []Part) []gemini.Part {
	out := make([]gemini.Part, len(parts))
	for i, p := range parts {
		out[i] = gemini.Part{Text: p.Text}
	}
	return out
}

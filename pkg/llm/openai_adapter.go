package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdapter adapts the OpenAI chat completion API to the llm.Provider
// interface. It also serves OpenAI-compatible endpoints via a custom base URL.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdapter creates a new OpenAI adapter
func NewOpenAIAdapter(apiKey, baseURL, model string) *OpenAIAdapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GenerateContent implements the Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.SystemInstruction != nil {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: flattenParts(req.SystemInstruction.Parts),
		})
	}

	for _, msg := range req.Messages {
		role := msg.Role
		switch role {
		case "", "user":
			role = openai.ChatMessageRoleUser
		case "model", "assistant":
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: flattenParts(msg.Parts),
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return &Response{
		Content: Message{
			Role:  "model",
			Parts: []Part{{Text: resp.Choices[0].Message.Content}},
		},
		ProviderName: a.Name(),
		ModelName:    a.model,
	}, nil
}

// Name returns the provider name
func (a *OpenAIAdapter) Name() string {
	return "openai"
}

// Model returns the model name
func (a *OpenAIAdapter) Model() string {
	return a.model
}

func flattenParts(parts []Part) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

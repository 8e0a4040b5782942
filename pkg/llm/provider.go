package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider defines the interface for generative text providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "openai")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized generation request
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Message represents a conversation message
type Message struct {
	Role  string // "user", "assistant", "system"
	Parts []Part
}

// Part represents a message part
type Part struct {
	Text string
}

// Response represents a normalized generation response
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
}

// UserRequest builds a single-turn user request with the given prompt.
func UserRequest(prompt string, temperature float64, maxTokens int) *Request {
	return &Request{
		Messages: []Message{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// Text flattens the response content into a single string. Providers differ in
// how they shape replies (single part, split parts, or none); anything without
// usable text falls back to a JSON rendering of the content so the caller
// always gets a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	for _, p := range r.Content.Parts {
		sb.WriteString(p.Text)
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		return s
	}

	raw, err := json.Marshal(r.Content)
	if err != nil || len(r.Content.Parts) == 0 {
		return ""
	}
	return string(raw)
}

package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for talking to a generative model.
// Curriculum generation and tutoring both go through Generate.
type Provider interface {
	// Generate sends a prompt to the model and returns its output.
	// When req.Schema is set, the provider uses its native structured output
	// mechanism and the returned Content is JSON that passed schema
	// validation. Without a schema, Content holds the raw reply text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation. EduStream always sends a single user
	// message; tutoring turns carry no history.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, the response Content is raw text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single-turn request body.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output: validated JSON for schema requests,
	// plain reply text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns Content as a string. Useful for free-text requests.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

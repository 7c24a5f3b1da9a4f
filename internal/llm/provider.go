// Package llm abstracts chat-completion providers behind a single interface
// with a uniform error taxonomy, so callers can fall back between providers
// without knowing which SDK produced a failure.
package llm

import "context"

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Complete sends a prompt to the LLM and returns its text response.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name returns a short provider identifier for logs ("openai", "gemini", "mock").
	Name() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history, oldest first.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float32
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

// Response holds the LLM's output.
type Response struct {
	// Content is the raw generated text.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Package chat powers the free-form AI conversation practice. Replies come
// from the provider chain; when every provider is down the learner gets a
// canned apology instead of an error.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/llm"
)

const conversationTemperature = 0.7

// Mode adjusts the tutor's style for text or read-aloud use.
type Mode string

const (
	ModeConversation Mode = "conversation"
	ModeVoice        Mode = "voice"
)

const (
	rateLimitedApology = "The AI is rate-limited right now. Please try again in a minute or check API billing."
	offlineApology     = "I'm having trouble connecting right now. Please try again!"
)

// Turn is one prior message of the conversation, oldest first.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Reply is the tutor's answer. Degraded is set when the text is a canned
// apology rather than a model response.
type Reply struct {
	Text     string
	Model    string
	Degraded bool
}

type completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Service holds the conversation tutor.
type Service struct {
	log       *slog.Logger
	llm       completer
	maxTokens int
}

// NewService creates the chat service. maxTokens falls back to a default
// when zero.
func NewService(log *slog.Logger, completer completer, maxTokens int) *Service {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Service{
		log:       log.With("service", "chat"),
		llm:       completer,
		maxTokens: maxTokens,
	}
}

// Respond sends the learner's message through the provider chain and
// returns the tutor's reply. Provider failures degrade to a canned apology;
// the only errors returned are input validation and context cancellation.
func (s *Service) Respond(ctx context.Context, text string, mode Mode, history []Turn) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, domain.NewValidationError("message", "must not be empty")
	}
	if mode != ModeVoice {
		mode = ModeConversation
	}

	messages := make([]llm.Message, 0, len(history)+1)
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == string(llm.RoleAssistant) {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := s.llm.Complete(ctx, llm.Request{
		System:      systemPrompt(mode),
		Messages:    messages,
		MaxTokens:   s.maxTokens,
		Temperature: conversationTemperature,
	})
	if err != nil {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}
		s.log.WarnContext(ctx, "all providers failed, serving apology",
			slog.String("mode", string(mode)),
			slog.String("error", err.Error()))
		return Reply{Text: apologyFor(err), Degraded: true}, nil
	}

	return Reply{Text: strings.TrimSpace(resp.Content), Model: resp.Model}, nil
}

// systemPrompt builds the tutor instruction for the given mode.
func systemPrompt(mode Mode) string {
	parts := []string{
		"You are an expert English tutor and friendly AI conversation partner.",
		"Goals: hold natural conversation, correct grammar subtly, encourage.",
		"Style: concise, human-like, supportive; avoid long paragraphs; ask short follow-ups.",
	}
	if mode == ModeVoice {
		parts = append(parts, "Optimize for being read aloud: short sentences, clear phrasing.")
	}
	return strings.Join(parts, " ")
}

func apologyFor(err error) string {
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) {
		return rateLimitedApology
	}
	return offlineApology
}

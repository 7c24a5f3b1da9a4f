// Package quizgen generates daily quiz question sets with an LLM and
// falls back to a built-in question bank when generation fails.
package quizgen

import (
	"context"
	"log/slog"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/llm"
)

const generationTemperature = 0.8

type completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Service produces quiz question sets.
type Service struct {
	log       *slog.Logger
	llm       completer
	perQuiz   int
	maxTokens int
}

// NewService creates a quiz generator. questionsPerQuiz and maxTokens fall
// back to sane defaults when zero.
func NewService(log *slog.Logger, completer completer, questionsPerQuiz, maxTokens int) *Service {
	if questionsPerQuiz <= 0 {
		questionsPerQuiz = 5
	}
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Service{
		log:       log.With("service", "quizgen"),
		llm:       completer,
		perQuiz:   questionsPerQuiz,
		maxTokens: maxTokens,
	}
}

// Generate returns a fresh question set for the topic. It never fails: if
// the provider chain is down or returns an unparseable payload, a built-in
// set chosen by the date key is returned instead. avoid lists question
// texts already shown today so retests get new material.
func (s *Service) Generate(ctx context.Context, topic Topic, dateKey string, avoid []string) []domain.Question {
	questions, err := s.generate(ctx, topic, avoid)
	if err != nil {
		s.log.WarnContext(ctx, "quiz generation failed, serving built-in set",
			slog.String("topic", string(topic)),
			slog.String("date_key", dateKey),
			slog.String("error", err.Error()))
		return bankQuestions(topic, dateKey)
	}

	s.log.InfoContext(ctx, "quiz generated",
		slog.String("topic", string(topic)),
		slog.Int("questions", len(questions)))
	return questions
}

func (s *Service) generate(ctx context.Context, topic Topic, avoid []string) ([]domain.Question, error) {
	resp, err := s.llm.Complete(ctx, llm.Request{
		System:      systemPrompt(topic),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userPrompt(topic, s.perQuiz, avoid)}},
		MaxTokens:   s.maxTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		return nil, err
	}
	return parseQuestions(resp.Content, topic)
}

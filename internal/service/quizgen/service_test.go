package quizgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/lingora/lingora-backend/internal/llm"
)

func testService(completer completer) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, completer, 5, 2048)
}

func TestGenerate_UsesProviderResponse(t *testing.T) {
	t.Parallel()

	mock := llm.NewMockProvider(llm.MockResponse{Content: validSet})
	svc := testService(mock)

	questions := svc.Generate(context.Background(), TopicGrammar, "2026-08-29", nil)
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].Question != "She ___ to school." {
		t.Errorf("Question = %q", questions[0].Question)
	}

	req := mock.Calls[0]
	if req.Temperature != 0.8 {
		t.Errorf("Temperature = %v, want 0.8", req.Temperature)
	}
	if !strings.Contains(req.System, "grammar teacher") {
		t.Errorf("System = %q", req.System)
	}
}

func TestGenerate_FallsBackToBankOnProviderFailure(t *testing.T) {
	t.Parallel()

	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	svc := testService(mock)

	questions := svc.Generate(context.Background(), TopicVocabulary, "2026-08-29", nil)
	if len(questions) == 0 {
		t.Fatal("fallback must still produce a question set")
	}
	for i, q := range questions {
		if q.Question == "" || len(q.Options) != 4 {
			t.Errorf("bank question %d malformed: %+v", i, q)
		}
	}
}

func TestGenerate_FallsBackOnGarbledOutput(t *testing.T) {
	t.Parallel()

	mock := llm.NewMockProvider(llm.MockResponse{Content: "I'm sorry, I can't do that."})
	svc := testService(mock)

	questions := svc.Generate(context.Background(), TopicIdioms, "2026-08-29", nil)
	if len(questions) == 0 {
		t.Fatal("fallback must still produce a question set")
	}
}

func TestGenerate_AvoidListReachesPrompt(t *testing.T) {
	t.Parallel()

	mock := llm.NewMockProvider(llm.MockResponse{Content: validSet})
	svc := testService(mock)

	avoid := []string{"She ___ to school every day.", "What does 'eloquent' mean?"}
	svc.Generate(context.Background(), TopicGrammar, "2026-08-29", avoid)

	prompt := mock.Calls[0].Messages[0].Content
	for _, q := range avoid {
		if !strings.Contains(prompt, q) {
			t.Errorf("prompt is missing avoided question %q", q)
		}
	}
}

func TestBankQuestions_DeterministicPerDay(t *testing.T) {
	t.Parallel()

	a := bankQuestions(TopicGrammar, "2026-08-29")
	b := bankQuestions(TopicGrammar, "2026-08-29")
	if a[0].Question != b[0].Question {
		t.Error("same day must pick the same bank set")
	}
}

func TestBankQuestions_AllTopicsPopulated(t *testing.T) {
	t.Parallel()

	for _, topic := range []Topic{TopicGrammar, TopicVocabulary, TopicReading, TopicIdioms} {
		questions := bankQuestions(topic, "2026-08-29")
		if len(questions) != 5 {
			t.Errorf("topic %s: got %d questions, want 5", topic, len(questions))
		}
		for i, q := range questions {
			if len(q.Options) != 4 {
				t.Errorf("topic %s question %d: %d options", topic, i+1, len(q.Options))
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				t.Errorf("topic %s question %d: correctIndex %d", topic, i+1, q.CorrectIndex)
			}
			if topic == TopicReading && q.Passage == "" {
				t.Errorf("topic %s question %d: missing passage", topic, i+1)
			}
		}
	}
}

func TestTopicForActivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id    string
		topic Topic
		ok    bool
	}{
		{"daily-1", TopicGrammar, true},
		{"daily-2", TopicVocabulary, true},
		{"daily-3", TopicReading, true},
		{"daily-4", TopicIdioms, true},
		{"daily-5", "", false},
		{"custom-grammar-drill", TopicGrammar, true},
		{"vocab-booster", TopicVocabulary, true},
		{"idiom-of-the-day", TopicIdioms, true},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		topic, ok := TopicForActivity(tt.id)
		if topic != tt.topic || ok != tt.ok {
			t.Errorf("TopicForActivity(%q) = (%q, %v), want (%q, %v)", tt.id, topic, ok, tt.topic, tt.ok)
		}
	}
}

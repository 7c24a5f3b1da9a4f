package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingora/lingora-backend/internal/domain"
)

// parseQuestions extracts a question set from raw model output. Models
// frequently wrap the JSON in code fences or prose, so we take everything
// between the first '[' and the last ']' and parse that.
func parseQuestions(content string, topic Topic) ([]domain.Question, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var questions []domain.Question
	if err := json.Unmarshal([]byte(content[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("empty question set")
	}

	for i := range questions {
		q := &questions[i]
		q.ID = i + 1
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("question %d: empty question text", q.ID)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d: want 4 options, got %d", q.ID, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("question %d: correctIndex %d out of range", q.ID, q.CorrectIndex)
		}
	}

	// Reading sets share one passage. Some models only fill it on the
	// first question, so propagate it to the rest.
	if topic == TopicReading {
		passage := strings.TrimSpace(questions[0].Passage)
		if passage == "" {
			return nil, fmt.Errorf("reading set is missing its passage")
		}
		for i := range questions {
			if questions[i].Passage == "" {
				questions[i].Passage = questions[0].Passage
			}
		}
	}

	return questions, nil
}

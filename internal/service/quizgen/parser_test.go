package quizgen

import (
	"testing"
)

const validSet = `[
  {"question": "She ___ to school.", "options": ["go", "goes", "going", "gone"], "correctIndex": 1, "explanation": "Third person singular."},
  {"question": "They ___ happy.", "options": ["is", "are", "am", "be"], "correctIndex": 1, "explanation": "Plural subject."}
]`

func TestParseQuestions_PlainArray(t *testing.T) {
	t.Parallel()

	questions, err := parseQuestions(validSet, TopicGrammar)
	if err != nil {
		t.Fatalf("parseQuestions() error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].ID != 1 || questions[1].ID != 2 {
		t.Errorf("ids must be renumbered sequentially, got %d and %d", questions[0].ID, questions[1].ID)
	}
	if questions[0].CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", questions[0].CorrectIndex)
	}
}

func TestParseQuestions_StripsCodeFence(t *testing.T) {
	t.Parallel()

	content := "Here is your quiz:\n```json\n" + validSet + "\n```\nEnjoy!"
	questions, err := parseQuestions(content, TopicGrammar)
	if err != nil {
		t.Fatalf("parseQuestions() error: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("got %d questions, want 2", len(questions))
	}
}

func TestParseQuestions_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"no array", "Sorry, I cannot generate a quiz right now."},
		{"not json", "[this is not json]"},
		{"empty array", "[]"},
		{"empty question text", `[{"question": "  ", "options": ["a", "b", "c", "d"], "correctIndex": 0}]`},
		{"three options", `[{"question": "Pick one", "options": ["a", "b", "c"], "correctIndex": 0}]`},
		{"index out of range", `[{"question": "Pick one", "options": ["a", "b", "c", "d"], "correctIndex": 4}]`},
		{"negative index", `[{"question": "Pick one", "options": ["a", "b", "c", "d"], "correctIndex": -1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := parseQuestions(tt.content, TopicGrammar); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseQuestions_ReadingPropagatesPassage(t *testing.T) {
	t.Parallel()

	content := `[
	  {"passage": "A short passage about bees.", "question": "Q1?", "options": ["a", "b", "c", "d"], "correctIndex": 0},
	  {"question": "Q2?", "options": ["a", "b", "c", "d"], "correctIndex": 1}
	]`

	questions, err := parseQuestions(content, TopicReading)
	if err != nil {
		t.Fatalf("parseQuestions() error: %v", err)
	}
	for i, q := range questions {
		if q.Passage != "A short passage about bees." {
			t.Errorf("question %d passage = %q", i+1, q.Passage)
		}
	}
}

func TestParseQuestions_ReadingRequiresPassage(t *testing.T) {
	t.Parallel()

	content := `[{"question": "Q1?", "options": ["a", "b", "c", "d"], "correctIndex": 0}]`
	if _, err := parseQuestions(content, TopicReading); err == nil {
		t.Error("expected error for reading set without a passage")
	}
}

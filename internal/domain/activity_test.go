package domain

import "testing"

func TestDailyActivityRecord_Key(t *testing.T) {
	t.Parallel()

	r := DailyActivityRecord{DateKey: "2026-03-09", ActivityID: "daily-1"}
	if got := r.Key(); got != "2026-03-09_daily-1" {
		t.Errorf("Key() = %q", got)
	}
}

func TestDailyActivityRecord_LimitReached(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record DailyActivityRecord
		want   bool
	}{
		{"no attempts", DailyActivityRecord{AttemptCount: 0}, false},
		{"one attempt", DailyActivityRecord{AttemptCount: 1}, false},
		{"both attempts used", DailyActivityRecord{AttemptCount: 2}, true},
		{"retest in progress keeps record enterable", DailyActivityRecord{AttemptCount: 2, RetestInProgress: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.record.LimitReached(); got != tt.want {
				t.Errorf("LimitReached() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActivityKind_IsTimed(t *testing.T) {
	t.Parallel()

	if KindQuiz.IsTimed() {
		t.Error("quiz must not be timed")
	}
	if !KindTimedSpeaking.IsTimed() || !KindTimedConversation.IsTimed() {
		t.Error("speaking and conversation kinds are timed")
	}
}

func TestDefaultActivityCatalog(t *testing.T) {
	t.Parallel()

	catalog := DefaultActivityCatalog()
	if len(catalog) != 6 {
		t.Fatalf("catalog has %d entries, want 6", len(catalog))
	}

	quizzes := 0
	for _, def := range catalog {
		if def.Kind == KindQuiz {
			quizzes++
		}
	}
	if quizzes != 4 {
		t.Errorf("catalog has %d quiz activities, want 4", quizzes)
	}
}

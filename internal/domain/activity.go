package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityKind is the closed set of daily activity variants. All
// kind-dependent behavior dispatches on this value in exactly one place
// (the activity service); nothing else compares kind strings.
type ActivityKind string

const (
	KindQuiz              ActivityKind = "quiz"
	KindTimedSpeaking     ActivityKind = "timed_speaking"
	KindTimedConversation ActivityKind = "timed_conversation"
)

// IsTimed reports whether completion is driven by elapsed time rather
// than quiz attempts.
func (k ActivityKind) IsTimed() bool {
	return k == KindTimedSpeaking || k == KindTimedConversation
}

// MaxDailyAttempts caps quiz attempts per activity per calendar day.
const MaxDailyAttempts = 2

// Question is one multiple-choice quiz item. Immutable once persisted;
// a fresh set is generated per first attempt and per retest.
type Question struct {
	ID           int      `json:"id"`
	Question     string   `json:"question"`
	Passage      string   `json:"passage,omitempty"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Attempt records one finished quiz pass.
type Attempt struct {
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// DailyActivityRecord is the per-(user, day, activity) state document.
// Records for different date keys are fully independent; the next day's
// record supersedes by key change, never by mutation.
type DailyActivityRecord struct {
	UserID           uuid.UUID
	DateKey          string
	ActivityID       string
	Kind             ActivityKind
	Topic            string
	Questions        []Question
	AttemptCount     int
	Attempts         []Attempt
	Attempt1Score    *int
	Attempt2Score    *int
	Completed        bool
	RetestInProgress bool
	RetestSeeded     bool
	CompletedAt      *time.Time
	TimeSpentMs      int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Key returns the composite document key used by the admin view and the
// original per-day namespacing scheme.
func (r *DailyActivityRecord) Key() string {
	return r.DateKey + "_" + r.ActivityID
}

// LimitReached reports whether the daily attempt cap blocks entry.
// An in-progress retest keeps the record enterable at attemptCount 2.
func (r *DailyActivityRecord) LimitReached() bool {
	return r.AttemptCount >= MaxDailyAttempts && !r.RetestInProgress
}

// ActivityDef is a catalog entry for the daily activity list.
type ActivityDef struct {
	ID    string
	Kind  ActivityKind
	Topic string
	Title string
}

// DefaultActivityCatalog mirrors the daily task list shown to learners.
// daily-1..4 are AI-generated quizzes; daily-5/6 are timed activities.
func DefaultActivityCatalog() []ActivityDef {
	return []ActivityDef{
		{ID: "daily-1", Kind: KindQuiz, Topic: "English Grammar", Title: "Grammar Mastery"},
		{ID: "daily-2", Kind: KindQuiz, Topic: "English Vocabulary", Title: "Vocabulary Pro"},
		{ID: "daily-3", Kind: KindQuiz, Topic: "Reading Comprehension", Title: "Reading Champ"},
		{ID: "daily-4", Kind: KindQuiz, Topic: "English Idioms and Phrases", Title: "Idioms & Phrases Star"},
		{ID: "daily-5", Kind: KindTimedSpeaking, Topic: "Speaking Practice (Listening & Pronunciation)", Title: "Speaking Practice"},
		{ID: "daily-6", Kind: KindTimedConversation, Topic: "Daily Conversation Scenarios", Title: "Conversation Challenge"},
	}
}

// DayGroup is one calendar day's worth of records for a user, used by the
// admin aggregation view.
type DayGroup struct {
	DateKey    string
	Activities []DailyActivityRecord
}

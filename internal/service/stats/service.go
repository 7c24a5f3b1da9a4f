// Package stats aggregates learner progress: the daily streak, learning
// hours per session, lesson completions, and quiz score averages.
package stats

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// userRepo defines the user repository interface.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateStreak(ctx context.Context, id uuid.UUID, streak, bestStreak int, at time.Time) error
	RecordSession(ctx context.Context, id uuid.UUID, hours float64, at time.Time) error
	IncrementLessons(ctx context.Context, id uuid.UUID, at time.Time) error
}

// lessonRepo defines the lesson record repository interface.
type lessonRepo interface {
	Upsert(ctx context.Context, rec *domain.LessonRecord) (*domain.LessonRecord, bool, error)
}

// activityRepo defines the slice of the activity repository the aggregates
// read from.
type activityRepo interface {
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, dateKey string) ([]domain.DailyActivityRecord, error)
	AverageQuizScore(ctx context.Context, userID uuid.UUID) (float64, bool, error)
}

// Service implements the progress aggregation operations.
type Service struct {
	log        *slog.Logger
	users      userRepo
	lessons    lessonRepo
	activities activityRepo
	loc        *time.Location
	now        func() time.Time
}

// NewService creates the stats service.
func NewService(log *slog.Logger, users userRepo, lessons lessonRepo, activities activityRepo, loc *time.Location) *Service {
	return &Service{
		log:        log.With("service", "stats"),
		users:      users,
		lessons:    lessons,
		activities: activities,
		loc:        loc,
		now:        time.Now,
	}
}

// AverageScore is the unweighted mean over every attempt score of quiz-kind
// records, rounded to the nearest whole percent. Zero when there are no
// attempts.
func AverageScore(records []domain.DailyActivityRecord) int {
	sum, n := 0, 0
	for _, rec := range records {
		if rec.Kind.IsTimed() {
			continue
		}
		for _, att := range rec.Attempts {
			sum += att.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

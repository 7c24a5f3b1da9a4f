package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/quizgen"
)

// RequestRetest starts the second attempt for a quiz finished once today.
// The protocol is lock-first: the record is saved with the retest lock
// (attemptCount 2, completed false, retestInProgress true, retestSeeded
// false) BEFORE any question generation, so a crash mid-generation still
// leaves the attempt consumed, never refunded. The fresh question set is
// seeded in a second write, avoiding the questions already shown.
func (s *Service) RequestRetest(ctx context.Context, userID uuid.UUID, activityID string) (*domain.DailyActivityRecord, error) {
	def, err := s.definition(activityID)
	if err != nil {
		return nil, err
	}
	if def.Kind.IsTimed() {
		return nil, domain.NewValidationError("activity_id", "timed activities have no retest")
	}

	dateKey, _ := s.today()

	rec, err := s.repo.Get(ctx, userID, dateKey, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("activity.RequestRetest: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("activity.RequestRetest get record: %w", err)
	}

	if rec.AttemptCount >= domain.MaxDailyAttempts || rec.RetestInProgress {
		return nil, domain.ErrDailyLimitReached
	}
	if len(rec.Attempts) == 0 {
		return nil, domain.NewValidationError("activity_id", "nothing to retest yet")
	}

	// Phase one: take the lock.
	previous := questionTexts(rec.Questions)
	rec.AttemptCount = domain.MaxDailyAttempts
	rec.Completed = false
	rec.RetestInProgress = true
	rec.RetestSeeded = false
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("activity.RequestRetest lock: %w", err)
	}
	s.notify.Publish(userID)

	// Phase two: seed the new question set.
	topic, ok := quizgen.TopicForActivity(activityID)
	if !ok {
		return nil, domain.NewValidationError("activity_id", "activity has no quiz topic")
	}
	rec.Questions = s.gen.Generate(ctx, topic, dateKey, previous)
	rec.RetestSeeded = true
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("activity.RequestRetest seed: %w", err)
	}

	s.log.InfoContext(ctx, "retest started",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", activityID))

	s.notify.Publish(userID)
	return rec, nil
}

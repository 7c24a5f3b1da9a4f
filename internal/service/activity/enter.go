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

// EnterResult is the state handed to a learner opening an activity.
type EnterResult struct {
	Record         *domain.DailyActivityRecord
	SecondsToReset int
}

// Enter opens an activity for today. Opening consumes an attempt: a fresh
// record starts at attemptCount 1, and a record left at 0 is bumped to 1.
// A locked retest that has not been seeded yet gets its new question set
// here. Returns ErrDailyLimitReached once both attempts are spent and no
// retest is in progress.
func (s *Service) Enter(ctx context.Context, userID uuid.UUID, activityID string) (*EnterResult, error) {
	def, err := s.definition(activityID)
	if err != nil {
		return nil, err
	}

	dateKey, secondsToReset := s.today()

	rec, err := s.repo.Get(ctx, userID, dateKey, activityID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("activity.Enter get record: %w", err)
	}

	if rec == nil {
		rec = &domain.DailyActivityRecord{
			UserID:       userID,
			DateKey:      dateKey,
			ActivityID:   activityID,
			Kind:         def.Kind,
			Topic:        def.Topic,
			AttemptCount: 1, // opening is the first attempt
		}
		if !def.Kind.IsTimed() {
			topic, ok := quizgen.TopicForActivity(activityID)
			if !ok {
				return nil, domain.NewValidationError("activity_id", "activity has no quiz topic")
			}
			rec.Questions = s.gen.Generate(ctx, topic, dateKey, nil)
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("activity.Enter create record: %w", err)
		}

		s.log.InfoContext(ctx, "activity entered",
			slog.String("user_id", userID.String()),
			slog.String("activity_id", activityID),
			slog.String("date_key", dateKey))

		s.notify.Publish(userID)
		return &EnterResult{Record: rec, SecondsToReset: secondsToReset}, nil
	}

	if rec.LimitReached() {
		return nil, domain.ErrDailyLimitReached
	}

	changed := false

	// A record can exist with zero attempts (admin reset); opening still
	// consumes the first attempt.
	if rec.AttemptCount == 0 {
		rec.AttemptCount = 1
		changed = true
	}

	// Phase two of the retest protocol: the lock was taken but the fresh
	// question set was not generated yet.
	if rec.RetestInProgress && !rec.RetestSeeded && !def.Kind.IsTimed() {
		topic, ok := quizgen.TopicForActivity(activityID)
		if !ok {
			return nil, domain.NewValidationError("activity_id", "activity has no quiz topic")
		}
		rec.Questions = s.gen.Generate(ctx, topic, dateKey, questionTexts(rec.Questions))
		rec.RetestSeeded = true
		changed = true
	}

	if changed {
		if err := s.repo.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("activity.Enter save record: %w", err)
		}
		s.notify.Publish(userID)
	}

	return &EnterResult{Record: rec, SecondsToReset: secondsToReset}, nil
}

package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// CompleteTimed marks a timed activity (speaking or conversation practice)
// as done for today after the required time has been spent. Unlike quizzes,
// timed activities complete in a single pass.
func (s *Service) CompleteTimed(ctx context.Context, userID uuid.UUID, activityID string, timeSpentMs int64) (*domain.DailyActivityRecord, error) {
	def, err := s.definition(activityID)
	if err != nil {
		return nil, err
	}
	if !def.Kind.IsTimed() {
		return nil, domain.NewValidationError("activity_id", "not a timed activity")
	}
	if timeSpentMs <= 0 {
		return nil, domain.NewValidationError("time_spent_ms", "must be positive")
	}

	dateKey, _ := s.today()
	now := s.now()

	rec, err := s.repo.Get(ctx, userID, dateKey, activityID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("activity.CompleteTimed get record: %w", err)
	}

	if rec == nil {
		rec = &domain.DailyActivityRecord{
			UserID:       userID,
			DateKey:      dateKey,
			ActivityID:   activityID,
			Kind:         def.Kind,
			Topic:        def.Topic,
			AttemptCount: 1,
			Completed:    true,
			CompletedAt:  &now,
			TimeSpentMs:  timeSpentMs,
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("activity.CompleteTimed create record: %w", err)
		}
	} else {
		rec.Completed = true
		rec.CompletedAt = &now
		rec.TimeSpentMs += timeSpentMs
		if rec.AttemptCount < 1 {
			rec.AttemptCount = 1
		}
		if err := s.repo.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("activity.CompleteTimed save record: %w", err)
		}
	}

	s.log.InfoContext(ctx, "timed activity completed",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", activityID),
		slog.Int64("time_spent_ms", timeSpentMs))

	s.notify.Publish(userID)
	return rec, nil
}

package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// FinishInput carries the learner's full answer vector. Answers are indexes
// into each question's option list; -1 marks a skipped question.
type FinishInput struct {
	Answers     []int
	TimeSpentMs int64
}

// Validate validates the finish input.
func (i FinishInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Answers) == 0 {
		errs = append(errs, domain.FieldError{Field: "answers", Message: "must not be empty"})
	}
	if i.TimeSpentMs < 0 {
		errs = append(errs, domain.FieldError{Field: "time_spent_ms", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Finish scores a completed quiz pass against the stored question set and
// records the attempt. The score is the rounded percent of correct answers.
// A pass during a retest finalizes the day at two attempts; the record is
// marked completed only once both attempts are spent. Always clears the
// retest lock. A day already at the attempt cap returns
// ErrDailyLimitReached unless a retest is in flight.
func (s *Service) Finish(ctx context.Context, userID uuid.UUID, activityID string, input FinishInput) (*domain.DailyActivityRecord, error) {
	if _, err := s.definition(activityID); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	dateKey, _ := s.today()

	rec, err := s.repo.Get(ctx, userID, dateKey, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("activity.Finish: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("activity.Finish get record: %w", err)
	}

	// A terminal record accepts no further passes. Only an in-flight
	// retest may write past the cap.
	if (rec.Completed || len(rec.Attempts) >= domain.MaxDailyAttempts) && !rec.RetestInProgress {
		return nil, domain.ErrDailyLimitReached
	}

	if len(rec.Questions) == 0 {
		return nil, domain.NewValidationError("activity_id", "no question set to score against")
	}
	if len(input.Answers) != len(rec.Questions) {
		return nil, domain.NewValidationError("answers", "answer count does not match the question set")
	}

	correct := 0
	for i, q := range rec.Questions {
		if input.Answers[i] == q.CorrectIndex {
			correct++
		}
	}
	score := int(math.Round(float64(correct) / float64(len(rec.Questions)) * 100))
	now := s.now()

	if rec.RetestInProgress {
		rec.AttemptCount = domain.MaxDailyAttempts
	} else if rec.AttemptCount < 1 {
		rec.AttemptCount = 1
	}

	// Per-attempt score columns for the admin matrix.
	switch {
	case rec.RetestInProgress:
		rec.Attempt2Score = &score
	case len(rec.Attempts) == 0:
		rec.Attempt1Score = &score
	case len(rec.Attempts) == 1:
		rec.Attempt2Score = &score
	}

	rec.Attempts = append(rec.Attempts, domain.Attempt{Score: score, CompletedAt: now})
	rec.Completed = rec.AttemptCount >= domain.MaxDailyAttempts
	rec.RetestInProgress = false
	rec.CompletedAt = &now
	if input.TimeSpentMs > 0 {
		rec.TimeSpentMs += input.TimeSpentMs
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("activity.Finish save record: %w", err)
	}

	s.log.InfoContext(ctx, "activity finished",
		slog.String("user_id", userID.String()),
		slog.String("activity_id", activityID),
		slog.Int("score", score),
		slog.Int("attempt_count", rec.AttemptCount))

	s.notify.Publish(userID)
	return rec, nil
}

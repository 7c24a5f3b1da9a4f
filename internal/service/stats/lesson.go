package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// RecordLessonCompletion stores a finished standalone lesson. Repeat
// completions bump the attempt counter and keep the best score; the
// profile's totalLessons counter grows only on the first completion, so
// it counts distinct lessons learned rather than total passes.
func (s *Service) RecordLessonCompletion(ctx context.Context, userID uuid.UUID, lessonID string, score int) (*domain.LessonRecord, error) {
	if lessonID == "" {
		return nil, domain.NewValidationError("lesson_id", "must not be empty")
	}
	if score < 0 || score > 100 {
		return nil, domain.NewValidationError("score", "must be between 0 and 100")
	}

	now := s.now()

	stored, first, err := s.lessons.Upsert(ctx, &domain.LessonRecord{
		UserID:      userID,
		LessonID:    lessonID,
		Score:       score,
		CompletedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("stats.RecordLessonCompletion upsert: %w", err)
	}

	if first {
		if err := s.users.IncrementLessons(ctx, userID, now); err != nil {
			return nil, fmt.Errorf("stats.RecordLessonCompletion count: %w", err)
		}
	}

	s.log.InfoContext(ctx, "lesson completed",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", lessonID),
		slog.Int("score", score),
		slog.Bool("first_completion", first))

	return stored, nil
}

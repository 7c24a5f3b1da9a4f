package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// UpdateStreak advances the daily streak. The day difference against the
// last update is computed at midnight granularity in the configured
// timezone: same day is a no-op, the next day extends the streak, any
// larger gap (or no prior update) restarts it at 1. bestStreak is raised
// whenever the current streak exceeds it. Idempotent within a day.
func (s *Service) UpdateStreak(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats.UpdateStreak get user: %w", err)
	}

	now := s.now()

	streak := 1
	if u.LastStreakUpdate != nil {
		switch days := domain.DaysBetween(*u.LastStreakUpdate, now, s.loc); {
		case days == 0:
			return u, nil
		case days == 1:
			streak = u.Streak + 1
		}
	}

	best := u.BestStreak
	if streak > best {
		best = streak
	}

	if err := s.users.UpdateStreak(ctx, userID, streak, best, now); err != nil {
		return nil, fmt.Errorf("stats.UpdateStreak save: %w", err)
	}

	s.log.InfoContext(ctx, "streak updated",
		slog.String("user_id", userID.String()),
		slog.Int("streak", streak),
		slog.Int("best_streak", best))

	u.Streak = streak
	u.BestStreak = best
	u.LastStreakUpdate = &now
	return u, nil
}

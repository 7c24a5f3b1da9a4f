package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// EndSession closes an explicit learning session. Elapsed time is counted
// in whole minutes and credited as fractional hours rounded to two
// decimals; the session counter is bumped and lastActive stamped even when
// the session was shorter than a minute.
func (s *Service) EndSession(ctx context.Context, userID uuid.UUID, sessionStart time.Time) (float64, error) {
	now := s.now()

	if sessionStart.IsZero() {
		return 0, domain.NewValidationError("session_start", "must be set")
	}
	if sessionStart.After(now) {
		return 0, domain.NewValidationError("session_start", "must not be in the future")
	}

	minutes := int(now.Sub(sessionStart).Minutes())
	hours := math.Round(float64(minutes)/60*100) / 100

	if err := s.users.RecordSession(ctx, userID, hours, now); err != nil {
		return 0, fmt.Errorf("stats.EndSession save: %w", err)
	}

	s.log.InfoContext(ctx, "session ended",
		slog.String("user_id", userID.String()),
		slog.Int("minutes", minutes))

	return hours, nil
}

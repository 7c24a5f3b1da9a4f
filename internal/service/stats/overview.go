package stats

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Overview is the profile screen's stats block.
type Overview struct {
	User           *domain.User
	TodayAverage   int // mean over today's quiz attempts
	OverallAverage int // mean over every stored quiz attempt
}

// GetOverview assembles the profile stats together with today's and the
// all-time quiz score averages.
func (s *Service) GetOverview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats.GetOverview get user: %w", err)
	}

	dateKey := domain.DateKey(s.now(), s.loc)
	today, err := s.activities.ListByUserAndDate(ctx, userID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("stats.GetOverview today's records: %w", err)
	}

	overall, ok, err := s.activities.AverageQuizScore(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats.GetOverview overall average: %w", err)
	}

	ov := &Overview{
		User:         u,
		TodayAverage: AverageScore(today),
	}
	if ok {
		ov.OverallAverage = int(math.Round(overall))
	}
	return ov, nil
}

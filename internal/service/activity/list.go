package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// DayItem pairs a catalog entry with today's record, if any.
type DayItem struct {
	Def    domain.ActivityDef
	Record *domain.DailyActivityRecord // nil when not yet opened today
}

// DayView is the daily activity dashboard.
type DayView struct {
	DateKey        string
	SecondsToReset int
	Items          []DayItem
}

// ListDay returns the full activity catalog with today's progress merged
// in, plus the countdown to the midnight rollover.
func (s *Service) ListDay(ctx context.Context, userID uuid.UUID) (*DayView, error) {
	dateKey, secondsToReset := s.today()

	records, err := s.repo.ListByUserAndDate(ctx, userID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("activity.ListDay: %w", err)
	}

	byID := make(map[string]*domain.DailyActivityRecord, len(records))
	for i := range records {
		byID[records[i].ActivityID] = &records[i]
	}

	defs := domain.DefaultActivityCatalog()
	items := make([]DayItem, 0, len(defs))
	for _, def := range defs {
		items = append(items, DayItem{Def: def, Record: byID[def.ID]})
	}

	return &DayView{
		DateKey:        dateKey,
		SecondsToReset: secondsToReset,
		Items:          items,
	}, nil
}

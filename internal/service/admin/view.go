package admin

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	activityrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/activity"
	"github.com/lingora/lingora-backend/internal/domain"
)

// UserView is one user's row in the dashboard matrix: the profile plus
// every stored activity record grouped by calendar day, newest day first.
type UserView struct {
	User domain.User
	Days []domain.DayGroup
}

// Dashboard is the full aggregation the overview screen renders.
type Dashboard struct {
	Users          []UserView
	ResetRequests  []domain.PasswordResetRequest
	UnreadRequests int
}

// LoadAll assembles the dashboard for every user. Unpaginated; the
// workload is operator-scale (tens of users), not public-scale.
func (s *Service) LoadAll(ctx context.Context) (*Dashboard, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.LoadAll users: %w", err)
	}

	records, err := s.activities.List(ctx, activityrepo.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("admin.LoadAll activities: %w", err)
	}

	byUser := make(map[uuid.UUID][]domain.DailyActivityRecord)
	for _, rec := range records {
		byUser[rec.UserID] = append(byUser[rec.UserID], rec)
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{User: u, Days: groupByDay(byUser[u.ID])})
	}

	requests, err := s.resets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.LoadAll reset requests: %w", err)
	}
	unread, err := s.resets.CountUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.LoadAll unread count: %w", err)
	}

	return &Dashboard{
		Users:          views,
		ResetRequests:  requests,
		UnreadRequests: unread,
	}, nil
}

// LoadUser re-derives a single user's grouped view. The live feed calls
// this on every published change.
func (s *Service) LoadUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("admin.LoadUser: %w", err)
	}

	records, err := s.activities.List(ctx, activityrepo.ListFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("admin.LoadUser activities: %w", err)
	}

	return &UserView{User: *u, Days: groupByDay(records)}, nil
}

// groupByDay buckets records by date key, newest day first. Records inside
// a day keep their incoming activity-id order.
func groupByDay(records []domain.DailyActivityRecord) []domain.DayGroup {
	byDay := make(map[string][]domain.DailyActivityRecord)
	keys := make([]string, 0)
	for _, rec := range records {
		if _, seen := byDay[rec.DateKey]; !seen {
			keys = append(keys, rec.DateKey)
		}
		byDay[rec.DateKey] = append(byDay[rec.DateKey], rec)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups := make([]domain.DayGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, domain.DayGroup{DateKey: key, Activities: byDay[key]})
	}
	return groups
}

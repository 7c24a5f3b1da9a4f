// Package admin implements the operator dashboard: the aggregated
// users-by-day matrix, the live per-user change feed, moderation actions
// (reset today, clear data), and the password-reset request workflow.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	activityrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/activity"
	"github.com/lingora/lingora-backend/internal/config"
	"github.com/lingora/lingora-backend/internal/domain"
)

// userRepo defines the user repository interface.
type userRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ResetStats(ctx context.Context, id uuid.UUID) error
}

// activityRepo defines the slice of the activity repository the dashboard
// reads and moderates.
type activityRepo interface {
	List(ctx context.Context, filter activityrepo.ListFilter) ([]domain.DailyActivityRecord, error)
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, dateKey string) ([]domain.DailyActivityRecord, error)
	Save(ctx context.Context, rec *domain.DailyActivityRecord) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// lessonRepo defines the lesson record repository interface.
type lessonRepo interface {
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// resetRequestRepo defines the password-reset request repository interface.
type resetRequestRepo interface {
	List(ctx context.Context) ([]domain.PasswordResetRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error)
	CountUnread(ctx context.Context) (int, error)
	MarkAllRead(ctx context.Context) error
	Approve(ctx context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// txManager defines the transaction manager interface.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the admin operations.
type Service struct {
	log        *slog.Logger
	users      userRepo
	activities activityRepo
	lessons    lessonRepo
	resets     resetRequestRepo
	tx         txManager
	feed       *Feed
	cfg        config.AdminConfig
	loc        *time.Location
	now        func() time.Time
}

// NewService creates the admin service. The feed is shared with the
// activity service, which publishes into it.
func NewService(
	log *slog.Logger,
	users userRepo,
	activities activityRepo,
	lessons lessonRepo,
	resets resetRequestRepo,
	tx txManager,
	feed *Feed,
	cfg config.AdminConfig,
	loc *time.Location,
) *Service {
	return &Service{
		log:        log.With("service", "admin"),
		users:      users,
		activities: activities,
		lessons:    lessons,
		resets:     resets,
		tx:         tx,
		feed:       feed,
		cfg:        cfg,
		loc:        loc,
		now:        time.Now,
	}
}

// ChangeFeed returns the shared change feed for transport-level subscriptions.
func (s *Service) ChangeFeed() *Feed { return s.feed }

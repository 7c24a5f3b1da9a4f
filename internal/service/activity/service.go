// Package activity owns the daily activity lifecycle: entering an
// activity (which consumes an attempt), finishing it, the two-phase
// retest protocol, and timed-activity completion.
package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/quizgen"
)

// activityRepo defines the daily activity repository interface.
type activityRepo interface {
	Get(ctx context.Context, userID uuid.UUID, dateKey, activityID string) (*domain.DailyActivityRecord, error)
	Create(ctx context.Context, rec *domain.DailyActivityRecord) error
	Save(ctx context.Context, rec *domain.DailyActivityRecord) error
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, dateKey string) ([]domain.DailyActivityRecord, error)
}

// generator produces quiz question sets. It never fails; generation
// problems degrade to a built-in bank inside the generator.
type generator interface {
	Generate(ctx context.Context, topic quizgen.Topic, dateKey string, avoid []string) []domain.Question
}

// notifier receives a ping whenever a user's activity state changes, so
// live admin views can re-derive. A nil-safe no-op implementation is fine.
type notifier interface {
	Publish(userID uuid.UUID)
}

type noopNotifier struct{}

func (noopNotifier) Publish(uuid.UUID) {}

// Service implements the daily activity operations.
type Service struct {
	log     *slog.Logger
	repo    activityRepo
	gen     generator
	notify  notifier
	loc     *time.Location
	catalog map[string]domain.ActivityDef
	now     func() time.Time
}

// NewService creates the activity service. notify may be nil.
func NewService(log *slog.Logger, repo activityRepo, gen generator, notify notifier, loc *time.Location) *Service {
	if notify == nil {
		notify = noopNotifier{}
	}
	catalog := make(map[string]domain.ActivityDef)
	for _, def := range domain.DefaultActivityCatalog() {
		catalog[def.ID] = def
	}
	return &Service{
		log:     log.With("service", "activity"),
		repo:    repo,
		gen:     gen,
		notify:  notify,
		loc:     loc,
		catalog: catalog,
		now:     time.Now,
	}
}

// today returns the current date key and seconds until it rolls over.
func (s *Service) today() (string, int) {
	now := s.now()
	return domain.DateKey(now, s.loc), int(domain.UntilNextMidnight(now, s.loc).Seconds())
}

func (s *Service) definition(activityID string) (domain.ActivityDef, error) {
	def, ok := s.catalog[activityID]
	if !ok {
		return domain.ActivityDef{}, domain.NewValidationError("activity_id", "unknown activity")
	}
	return def, nil
}

// questionTexts collects the question strings already shown, used as the
// retest avoid-list.
func questionTexts(questions []domain.Question) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.Question)
	}
	return out
}

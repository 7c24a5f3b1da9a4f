package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// ResetUserToday wipes the attempt state of today's records for one user:
// attempt counters, scores, completion and the retest lock all go back to
// zero. Question sets and records from earlier days are untouched.
func (s *Service) ResetUserToday(ctx context.Context, userID uuid.UUID) (int, error) {
	dateKey := domain.DateKey(s.now(), s.loc)

	records, err := s.activities.ListByUserAndDate(ctx, userID, dateKey)
	if err != nil {
		return 0, fmt.Errorf("admin.ResetUserToday list: %w", err)
	}

	for i := range records {
		rec := &records[i]
		rec.AttemptCount = 0
		rec.Attempts = nil
		rec.Attempt1Score = nil
		rec.Attempt2Score = nil
		rec.Completed = false
		rec.RetestInProgress = false
		rec.RetestSeeded = false
		rec.CompletedAt = nil
		rec.TimeSpentMs = 0
		if err := s.activities.Save(ctx, rec); err != nil {
			return 0, fmt.Errorf("admin.ResetUserToday save %s: %w", rec.ActivityID, err)
		}
	}

	s.log.InfoContext(ctx, "user day reset",
		slog.String("user_id", userID.String()),
		slog.String("date_key", dateKey),
		slog.Int("records", len(records)))

	s.feed.Publish(userID)
	return len(records), nil
}

// ClearUserData deletes every activity and lesson record the user owns and
// zeroes the profile aggregates. The account itself survives. Destructive;
// the transport layer demands an explicit confirmation flag.
func (s *Service) ClearUserData(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("admin.ClearUserData: %w", err)
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.activities.DeleteAllByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
		if _, err := s.lessons.DeleteAllByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete lessons: %w", err)
		}
		if err := s.users.ResetStats(ctx, userID); err != nil {
			return fmt.Errorf("reset stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("admin.ClearUserData: %w", err)
	}

	s.log.InfoContext(ctx, "user data cleared", slog.String("user_id", userID.String()))

	s.feed.Publish(userID)
	return nil
}

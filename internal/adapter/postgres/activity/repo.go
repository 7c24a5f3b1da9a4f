// Package activity implements the DailyActivityRecord repository using PostgreSQL.
//
// Questions and attempts are stored as jsonb documents: they are written and
// read as whole values, never queried into, which keeps the schema stable
// while the question format evolves.
package activity

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides daily-activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `user_id, date_key, activity_id, kind, topic, questions,
	attempt_count, attempts, attempt1_score, attempt2_score, completed,
	retest_in_progress, retest_seeded, completed_at, time_spent_ms,
	created_at, updated_at`

func scanRecord(row pgx.Row) (*domain.DailyActivityRecord, error) {
	var (
		rec       domain.DailyActivityRecord
		questions []byte
		attempts  []byte
	)
	err := row.Scan(
		&rec.UserID, &rec.DateKey, &rec.ActivityID, &rec.Kind, &rec.Topic, &questions,
		&rec.AttemptCount, &attempts, &rec.Attempt1Score, &rec.Attempt2Score, &rec.Completed,
		&rec.RetestInProgress, &rec.RetestSeeded, &rec.CompletedAt, &rec.TimeSpentMs,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &rec.Questions); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
	}
	if len(attempts) > 0 {
		if err := json.Unmarshal(attempts, &rec.Attempts); err != nil {
			return nil, fmt.Errorf("decode attempts: %w", err)
		}
	}
	return &rec, nil
}

func encodeJSON(v any) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// Get returns the record for one (user, day, activity) triple.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, dateKey, activityID string) (*domain.DailyActivityRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + columns + ` FROM daily_activities
		WHERE user_id = $1 AND date_key = $2 AND activity_id = $3`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, dateKey, activityID))
	if err != nil {
		return nil, postgres.MapError(err, "daily_activity", dateKey+"_"+activityID)
	}
	return rec, nil
}

// Create inserts a new record. Returns domain.ErrAlreadyExists when the
// (user, day, activity) row already exists, which callers use to detect a
// concurrent first entry.
func (r *Repo) Create(ctx context.Context, rec *domain.DailyActivityRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	questions, err := encodeJSON(rec.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	attempts, err := encodeJSON(rec.Attempts)
	if err != nil {
		return fmt.Errorf("encode attempts: %w", err)
	}

	const query = `
		INSERT INTO daily_activities (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())`

	_, err = q.Exec(ctx, query,
		rec.UserID, rec.DateKey, rec.ActivityID, rec.Kind, rec.Topic, questions,
		rec.AttemptCount, attempts, rec.Attempt1Score, rec.Attempt2Score, rec.Completed,
		rec.RetestInProgress, rec.RetestSeeded, rec.CompletedAt, rec.TimeSpentMs)
	if err != nil {
		return postgres.MapError(err, "daily_activity", rec.Key())
	}
	return nil
}

// Save overwrites every mutable field of an existing record.
func (r *Repo) Save(ctx context.Context, rec *domain.DailyActivityRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	questions, err := encodeJSON(rec.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	attempts, err := encodeJSON(rec.Attempts)
	if err != nil {
		return fmt.Errorf("encode attempts: %w", err)
	}

	const query = `
		UPDATE daily_activities
		SET kind = $4, topic = $5, questions = $6, attempt_count = $7, attempts = $8,
		    attempt1_score = $9, attempt2_score = $10, completed = $11,
		    retest_in_progress = $12, retest_seeded = $13, completed_at = $14,
		    time_spent_ms = $15, updated_at = now()
		WHERE user_id = $1 AND date_key = $2 AND activity_id = $3`

	tag, err := q.Exec(ctx, query,
		rec.UserID, rec.DateKey, rec.ActivityID, rec.Kind, rec.Topic, questions,
		rec.AttemptCount, attempts, rec.Attempt1Score, rec.Attempt2Score, rec.Completed,
		rec.RetestInProgress, rec.RetestSeeded, rec.CompletedAt, rec.TimeSpentMs)
	if err != nil {
		return postgres.MapError(err, "daily_activity", rec.Key())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "daily_activity", rec.Key())
	}
	return nil
}

// ListByUserAndDate returns all of a user's records for one date key.
func (r *Repo) ListByUserAndDate(ctx context.Context, userID uuid.UUID, dateKey string) ([]domain.DailyActivityRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + columns + ` FROM daily_activities
		WHERE user_id = $1 AND date_key = $2
		ORDER BY activity_id`

	rows, err := q.Query(ctx, query, userID, dateKey)
	if err != nil {
		return nil, postgres.MapError(err, "daily_activity", dateKey)
	}
	defer rows.Close()

	return collect(rows, dateKey)
}

// ListFilter narrows the admin listing. Zero-valued fields are ignored.
type ListFilter struct {
	UserID   *uuid.UUID
	DateKey  string
	FromDate string
	ToDate   string
}

// List returns records matching the filter, newest day first.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]domain.DailyActivityRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(columns).
		From("daily_activities").
		OrderBy("date_key DESC", "user_id", "activity_id").
		PlaceholderFormat(sq.Dollar)

	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.DateKey != "" {
		builder = builder.Where(sq.Eq{"date_key": filter.DateKey})
	}
	if filter.FromDate != "" {
		builder = builder.Where(sq.GtOrEq{"date_key": filter.FromDate})
	}
	if filter.ToDate != "" {
		builder = builder.Where(sq.LtOrEq{"date_key": filter.ToDate})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "daily_activity", "list")
	}
	defer rows.Close()

	return collect(rows, "list")
}

// DeleteByUserAndDate removes all of a user's records for one date key.
// Returns the number of rows removed.
func (r *Repo) DeleteByUserAndDate(ctx context.Context, userID uuid.UUID, dateKey string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `DELETE FROM daily_activities WHERE user_id = $1 AND date_key = $2`

	tag, err := q.Exec(ctx, query, userID, dateKey)
	if err != nil {
		return 0, postgres.MapError(err, "daily_activity", dateKey)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteAllByUser removes every activity record a user owns.
// Returns the number of rows removed.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `DELETE FROM daily_activities WHERE user_id = $1`

	tag, err := q.Exec(ctx, query, userID)
	if err != nil {
		return 0, postgres.MapError(err, "daily_activity", userID.String())
	}
	return int(tag.RowsAffected()), nil
}

// AverageQuizScore returns the mean of every recorded attempt score for the
// user across all days, or ok=false when no attempt exists yet.
func (r *Repo) AverageQuizScore(ctx context.Context, userID uuid.UUID) (float64, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		SELECT AVG((a.value ->> 'score')::numeric)
		FROM daily_activities d, jsonb_array_elements(d.attempts) a
		WHERE d.user_id = $1`

	var avg *float64
	if err := q.QueryRow(ctx, query, userID).Scan(&avg); err != nil {
		return 0, false, postgres.MapError(err, "daily_activity", userID.String())
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

func collect(rows pgx.Rows, key string) ([]domain.DailyActivityRecord, error) {
	var records []domain.DailyActivityRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, postgres.MapError(err, "daily_activity", key)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "daily_activity", key)
	}
	return records, nil
}

// Package lesson implements the LessonRecord repository using PostgreSQL.
package lesson

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides lesson-completion persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lesson repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert records a lesson completion. On repeat completions the attempt
// counter is bumped and the score keeps the best result. Returns the stored
// record and whether this was the first completion.
func (r *Repo) Upsert(ctx context.Context, rec *domain.LessonRecord) (*domain.LessonRecord, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		INSERT INTO lesson_records (user_id, lesson_id, score, attempts, completed_at)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (user_id, lesson_id) DO UPDATE
		SET score = GREATEST(lesson_records.score, EXCLUDED.score),
		    attempts = lesson_records.attempts + 1,
		    completed_at = EXCLUDED.completed_at
		RETURNING user_id, lesson_id, score, attempts, completed_at`

	var stored domain.LessonRecord
	err := q.QueryRow(ctx, query, rec.UserID, rec.LessonID, rec.Score, rec.CompletedAt).Scan(
		&stored.UserID, &stored.LessonID, &stored.Score, &stored.Attempts, &stored.CompletedAt)
	if err != nil {
		return nil, false, postgres.MapError(err, "lesson_record", rec.LessonID)
	}

	return &stored, stored.Attempts == 1, nil
}

// GetByUserAndLesson returns one lesson record.
func (r *Repo) GetByUserAndLesson(ctx context.Context, userID uuid.UUID, lessonID string) (*domain.LessonRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		SELECT user_id, lesson_id, score, attempts, completed_at
		FROM lesson_records
		WHERE user_id = $1 AND lesson_id = $2`

	var rec domain.LessonRecord
	err := q.QueryRow(ctx, query, userID, lessonID).Scan(
		&rec.UserID, &rec.LessonID, &rec.Score, &rec.Attempts, &rec.CompletedAt)
	if err != nil {
		return nil, postgres.MapError(err, "lesson_record", lessonID)
	}
	return &rec, nil
}

// ListByUser returns all lesson records for a user, most recent first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.LessonRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		SELECT user_id, lesson_id, score, attempts, completed_at
		FROM lesson_records
		WHERE user_id = $1
		ORDER BY completed_at DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, postgres.MapError(err, "lesson_record", userID.String())
	}
	defer rows.Close()

	var records []domain.LessonRecord
	for rows.Next() {
		var rec domain.LessonRecord
		if err := rows.Scan(&rec.UserID, &rec.LessonID, &rec.Score, &rec.Attempts, &rec.CompletedAt); err != nil {
			return nil, postgres.MapError(err, "lesson_record", userID.String())
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lesson_record", userID.String())
	}
	return records, nil
}

// DeleteAllByUser removes every lesson record a user owns.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `DELETE FROM lesson_records WHERE user_id = $1`

	tag, err := q.Exec(ctx, query, userID)
	if err != nil {
		return 0, postgres.MapError(err, "lesson_record", userID.String())
	}
	return int(tag.RowsAffected()), nil
}

// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, display_name, level, role, streak, best_streak,
	total_lessons, hours_learned, total_sessions, last_active, last_streak_update,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.Level, &u.Role, &u.Streak, &u.BestStreak,
		&u.TotalLessons, &u.HoursLearned, &u.TotalSessions, &u.LastActive, &u.LastStreakUpdate,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}
	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		INSERT INTO users (id, email, display_name, level, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		u.ID, u.Email, u.DisplayName, u.Level, u.Role, u.CreatedAt, u.UpdatedAt))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID.String())
	}
	return created, nil
}

// UpdateProfile modifies display name and/or level. Nil fields are left unchanged.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, displayName, level *string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		UPDATE users
		SET display_name = COALESCE($2, display_name),
		    level        = COALESCE($3, level),
		    updated_at   = now()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(q.QueryRow(ctx, query, id, displayName, level))
	if err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}
	return u, nil
}

// UpdateRole sets the user's role.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, role)
	if err != nil {
		return postgres.MapError(err, "user", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id.String())
	}
	return nil
}

// UpdateStreak sets the streak counters and marks the streak update time.
func (r *Repo) UpdateStreak(ctx context.Context, id uuid.UUID, streak, bestStreak int, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		UPDATE users
		SET streak = $2, best_streak = $3, last_streak_update = $4,
		    last_active = $4, updated_at = now()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, streak, bestStreak, at)
	if err != nil {
		return postgres.MapError(err, "user", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id.String())
	}
	return nil
}

// RecordSession adds learning hours and bumps the session counter.
func (r *Repo) RecordSession(ctx context.Context, id uuid.UUID, hours float64, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		UPDATE users
		SET hours_learned = hours_learned + $2, total_sessions = total_sessions + 1,
		    last_active = $3, updated_at = now()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, hours, at)
	if err != nil {
		return postgres.MapError(err, "user", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id.String())
	}
	return nil
}

// IncrementLessons bumps the completed-lesson counter.
func (r *Repo) IncrementLessons(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		UPDATE users
		SET total_lessons = total_lessons + 1, last_active = $2, updated_at = now()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return postgres.MapError(err, "user", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id.String())
	}
	return nil
}

// ResetStats zeroes every aggregate counter for the user. Used by the admin
// clear-data operation; the account itself survives.
func (r *Repo) ResetStats(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		UPDATE users
		SET streak = 0, best_streak = 0, total_lessons = 0, hours_learned = 0,
		    total_sessions = 0, last_streak_update = NULL, updated_at = now()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return postgres.MapError(err, "user", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id.String())
	}
	return nil
}

// List returns all users ordered by creation time. Used by the admin view.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, postgres.MapError(err, "user", "all")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, postgres.MapError(err, "user", "all")
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user", "all")
	}
	return users, nil
}

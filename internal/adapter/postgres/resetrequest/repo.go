// Package resetrequest implements the PasswordResetRequest repository using PostgreSQL.
package resetrequest

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides password-reset-request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reset request repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, email, status, approved, admin_read, new_password_to_set,
	requested_at, read_at, approved_at`

func scan(row pgx.Row) (*domain.PasswordResetRequest, error) {
	var req domain.PasswordResetRequest
	err := row.Scan(
		&req.ID, &req.Email, &req.Status, &req.Approved, &req.AdminRead,
		&req.NewPasswordToSet, &req.RequestedAt, &req.ReadAt, &req.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a new pending reset request.
func (r *Repo) Create(ctx context.Context, req *domain.PasswordResetRequest) (*domain.PasswordResetRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		INSERT INTO password_reset_requests (id, email, status, requested_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + columns

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	created, err := scan(q.QueryRow(ctx, query, req.ID, req.Email, req.Status, req.RequestedAt))
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_request", req.Email)
	}
	return created, nil
}

// GetByID returns a request by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + columns + ` FROM password_reset_requests WHERE id = $1`

	req, err := scan(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_request", id.String())
	}
	return req, nil
}

// GetPendingByEmail returns the open pending request for an email, if any.
func (r *Repo) GetPendingByEmail(ctx context.Context, email string) (*domain.PasswordResetRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + columns + ` FROM password_reset_requests
		WHERE email = $1 AND status = 'pending'
		ORDER BY requested_at DESC
		LIMIT 1`

	req, err := scan(q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_request", email)
	}
	return req, nil
}

// GetApprovedByEmail returns the approved request for an email, if any.
// Mirrors the learner-side equality-filtered poll of the reset flow.
func (r *Repo) GetApprovedByEmail(ctx context.Context, email string) (*domain.PasswordResetRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + columns + ` FROM password_reset_requests
		WHERE email = $1 AND status = 'approved' AND approved
		ORDER BY requested_at DESC
		LIMIT 1`

	req, err := scan(q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_request", email)
	}
	return req, nil
}

// List returns all requests, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.PasswordResetRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + columns + ` FROM password_reset_requests ORDER BY requested_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_request", "all")
	}
	defer rows.Close()

	var requests []domain.PasswordResetRequest
	for rows.Next() {
		req, err := scan(rows)
		if err != nil {
			return nil, postgres.MapError(err, "password_reset_request", "all")
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "password_reset_request", "all")
	}
	return requests, nil
}

// CountUnread returns how many requests no admin has read yet.
func (r *Repo) CountUnread(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT COUNT(*) FROM password_reset_requests WHERE NOT admin_read`

	var count int
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "password_reset_request", "unread")
	}
	return count, nil
}

// MarkAllRead flags every request as seen by an admin.
func (r *Repo) MarkAllRead(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `UPDATE password_reset_requests SET admin_read = TRUE, read_at = now() WHERE NOT admin_read`

	if _, err := q.Exec(ctx, query); err != nil {
		return postgres.MapError(err, "password_reset_request", "mark_read")
	}
	return nil
}

// Approve transitions a pending request to approved.
func (r *Repo) Approve(ctx context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		UPDATE password_reset_requests
		SET status = 'approved', approved = TRUE, approved_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + columns

	req, err := scan(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_request", id.String())
	}
	return req, nil
}

// MarkSent records the new password and transitions an approved request to
// password_reset_sent.
func (r *Repo) MarkSent(ctx context.Context, id uuid.UUID, newPassword string) (*domain.PasswordResetRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		UPDATE password_reset_requests
		SET status = 'password_reset_sent', new_password_to_set = $2
		WHERE id = $1 AND status = 'approved'
		RETURNING ` + columns

	req, err := scan(q.QueryRow(ctx, query, id, newPassword))
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_request", id.String())
	}
	return req, nil
}

// Delete removes a request. Used for denial and for cleanup after completion.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `DELETE FROM password_reset_requests WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return postgres.MapError(err, "password_reset_request", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "password_reset_request", id.String())
	}
	return nil
}

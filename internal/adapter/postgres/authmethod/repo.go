// Package authmethod implements the AuthMethod repository using PostgreSQL.
package authmethod

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingora/lingora-backend/internal/adapter/postgres"
	"github.com/lingora/lingora-backend/internal/domain"
)

// Repo provides auth-method persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auth method repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, user_id, method, password_hash, provider_id, created_at`

func scan(row pgx.Row) (*domain.AuthMethod, error) {
	var am domain.AuthMethod
	err := row.Scan(&am.ID, &am.UserID, &am.Method, &am.PasswordHash, &am.ProviderID, &am.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &am, nil
}

// Create inserts a new auth method.
func (r *Repo) Create(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `
		INSERT INTO auth_methods (id, user_id, method, password_hash, provider_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + columns

	if am.ID == uuid.Nil {
		am.ID = uuid.New()
	}

	created, err := scan(q.QueryRow(ctx, query, am.ID, am.UserID, am.Method, am.PasswordHash, am.ProviderID))
	if err != nil {
		return nil, postgres.MapError(err, "auth_method", am.UserID.String())
	}
	return created, nil
}

// GetByUserAndMethod returns the auth method of the given type for a user.
func (r *Repo) GetByUserAndMethod(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + columns + ` FROM auth_methods WHERE user_id = $1 AND method = $2`

	am, err := scan(q.QueryRow(ctx, query, userID, method))
	if err != nil {
		return nil, postgres.MapError(err, "auth_method", userID.String())
	}
	return am, nil
}

// GetByOAuth returns the auth method matching a federated provider identity.
func (r *Repo) GetByOAuth(ctx context.Context, method domain.AuthMethodType, providerID string) (*domain.AuthMethod, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `SELECT ` + columns + ` FROM auth_methods WHERE method = $1 AND provider_id = $2`

	am, err := scan(q.QueryRow(ctx, query, method, providerID))
	if err != nil {
		return nil, postgres.MapError(err, "auth_method", providerID)
	}
	return am, nil
}

// UpdatePasswordHash replaces the stored bcrypt hash for the user's password method.
func (r *Repo) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	const query = `UPDATE auth_methods SET password_hash = $2 WHERE user_id = $1 AND method = 'password'`

	tag, err := q.Exec(ctx, query, userID, hash)
	if err != nil {
		return postgres.MapError(err, "auth_method", userID.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "auth_method", userID.String())
	}
	return nil
}

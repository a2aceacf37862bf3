package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/auth-service/internal/domain"
)

// IdentityRepository is the directory lookup behind token subjects. Absent
// subjects surface as pgx.ErrNoRows.
type IdentityRepository interface {
	GetBySubject(ctx context.Context, subject string) (*domain.Identity, error)
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository returns a Postgres-backed implementation.
func NewIdentityRepository(pool *pgxpool.Pool) IdentityRepository {
	return &identityRepository{pool: pool}
}

const identityColumns = `
        id, email, username, phone_number, status, mfa_enabled,
        preferred_mfa_method, roles, last_login_at, created_at, updated_at`

func (r *identityRepository) GetBySubject(ctx context.Context, subject string) (*domain.Identity, error) {
	const query = `
        SELECT` + identityColumns + `
        FROM users WHERE email=$1`

	return r.scanIdentity(r.pool.QueryRow(ctx, query, subject))
}

func (r *identityRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	const query = `
        SELECT` + identityColumns + `
        FROM users WHERE id=$1`

	return r.scanIdentity(r.pool.QueryRow(ctx, query, id))
}

func (r *identityRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	const query = `
        UPDATE users SET last_login_at=$2, updated_at=NOW()
        WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *identityRepository) scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	if err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.Username,
		&identity.PhoneNumber,
		&identity.Status,
		&identity.MFAEnabled,
		&identity.PreferredMFAMethod,
		&identity.Roles,
		&identity.LastLoginAt,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &identity, nil
}

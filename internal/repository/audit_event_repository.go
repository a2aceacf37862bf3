package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/auth-service/internal/audit"
)

// AuditEventRepository persists and queries the audit trail.
type AuditEventRepository interface {
	Insert(ctx context.Context, event *audit.Event) error
	ListBySubject(ctx context.Context, subject string, limit int) ([]audit.Event, error)
}

type auditEventRepository struct {
	pool *pgxpool.Pool
}

// NewAuditEventRepository returns a Postgres-backed implementation.
func NewAuditEventRepository(pool *pgxpool.Pool) AuditEventRepository {
	return &auditEventRepository{pool: pool}
}

func (r *auditEventRepository) Insert(ctx context.Context, event *audit.Event) error {
	const query = `
        INSERT INTO audit_events (id, subject, event_type, description, ip_address, user_agent, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Subject,
		event.Type,
		event.Description,
		event.IP,
		event.UserAgent,
		event.Timestamp,
	)
	return err
}

func (r *auditEventRepository) ListBySubject(ctx context.Context, subject string, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, subject, event_type, description, ip_address, user_agent, occurred_at
        FROM audit_events WHERE subject=$1
        ORDER BY occurred_at DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, subject, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditEvents(rows)
}

func scanAuditEvents(rows pgx.Rows) ([]audit.Event, error) {
	result := make([]audit.Event, 0)
	for rows.Next() {
		var event audit.Event
		if err := rows.Scan(
			&event.ID,
			&event.Subject,
			&event.Type,
			&event.Description,
			&event.IP,
			&event.UserAgent,
			&event.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

// Package audit implements the audit trail repository using PostgreSQL.
// The table is append-only: records are never updated or deleted.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides audit record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createAuditSQL = `
INSERT INTO audit_records (id, organization_id, actor_id, action, entity_type,
                           entity_id, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const listAuditByOrgSQL = `
SELECT id, organization_id, actor_id, action, entity_type, entity_id, metadata, created_at
FROM audit_records
WHERE organization_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

// Create appends one audit record.
func (r *Repo) Create(ctx context.Context, rec domain.AuditRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = querier.Exec(ctx, createAuditSQL,
		rec.ID, rec.OrganizationID, rec.ActorID, rec.Action, rec.EntityType,
		rec.EntityID, metadata, rec.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "audit record", rec.ID.String())
	}

	return nil
}

// ListByOrganization returns an organization's audit trail, newest first.
func (r *Repo) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listAuditByOrgSQL, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var recs []domain.AuditRecord
	for rows.Next() {
		var (
			rec        domain.AuditRecord
			action     string
			entityType string
			metadata   []byte
		)
		if err := rows.Scan(&rec.ID, &rec.OrganizationID, &rec.ActorID, &action,
			&entityType, &rec.EntityID, &metadata, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		rec.Action = domain.AuditAction(action)
		rec.EntityType = domain.EntityType(entityType)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &rec.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}

	if recs == nil {
		recs = []domain.AuditRecord{}
	}

	return recs, nil
}

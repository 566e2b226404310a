// Package matter implements the Matter and Comment repositories using PostgreSQL.
package matter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides matter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new matter repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const matterColumns = `id, organization_id, client_id, title, description,
       status, assignee_id, created_by, created_at, updated_at`

const createMatterSQL = `
INSERT INTO matters (id, organization_id, client_id, title, description,
                     status, assignee_id, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const getMatterByIDSQL = `
SELECT ` + matterColumns + `
FROM matters
WHERE id = $1 AND organization_id = $2`

const listMattersByClientSQL = `
SELECT ` + matterColumns + `
FROM matters
WHERE organization_id = $1 AND client_id = $2
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

const listMattersByAssigneeSQL = `
SELECT ` + matterColumns + `
FROM matters
WHERE organization_id = $1 AND assignee_id = $2
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

const updateMatterStatusSQL = `
UPDATE matters SET status = $3, updated_at = $4
WHERE id = $1 AND organization_id = $2`

const updateMatterAssigneeSQL = `
UPDATE matters SET assignee_id = $3, updated_at = $4
WHERE id = $1 AND organization_id = $2`

// Create inserts a new matter.
func (r *Repo) Create(ctx context.Context, m domain.Matter) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createMatterSQL,
		m.ID, m.OrganizationID, m.ClientID, m.Title, m.Description,
		m.Status, m.AssigneeID, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "matter", m.ID.String())
	}

	return nil
}

// GetByID returns a matter scoped by organization.
func (r *Repo) GetByID(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMatter(querier.QueryRow(ctx, getMatterByIDSQL, matterID, orgID))
	if err != nil {
		return domain.Matter{}, postgres.MapError(err, "matter", matterID.String())
	}

	return m, nil
}

// ListByClient returns a client's matters, newest first.
func (r *Repo) ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Matter, error) {
	return r.list(ctx, listMattersByClientSQL, orgID, clientID, limit, offset)
}

// ListByAssignee returns matters assigned to a user, newest first.
func (r *Repo) ListByAssignee(ctx context.Context, orgID, assigneeID uuid.UUID, limit, offset int) ([]domain.Matter, error) {
	return r.list(ctx, listMattersByAssigneeSQL, orgID, assigneeID, limit, offset)
}

func (r *Repo) list(ctx context.Context, sql string, orgID, scopeID uuid.UUID, limit, offset int) ([]domain.Matter, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, orgID, scopeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list matters: %w", err)
	}
	defer rows.Close()

	matters, err := scanMatters(rows)
	if err != nil {
		return nil, fmt.Errorf("list matters: %w", err)
	}

	return matters, nil
}

// UpdateStatus sets a matter's status. Transition legality is the service's
// responsibility; the repo only persists.
func (r *Repo) UpdateStatus(ctx context.Context, m domain.Matter) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateMatterStatusSQL, m.ID, m.OrganizationID, m.Status, m.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "matter", m.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("matter %s: %w", m.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateAssignee sets or clears a matter's assignee.
func (r *Repo) UpdateAssignee(ctx context.Context, m domain.Matter) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateMatterAssigneeSQL, m.ID, m.OrganizationID, m.AssigneeID, m.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "matter", m.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("matter %s: %w", m.ID, domain.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatter(row rowScanner) (domain.Matter, error) {
	var (
		m      domain.Matter
		status string
	)
	if err := row.Scan(&m.ID, &m.OrganizationID, &m.ClientID, &m.Title, &m.Description,
		&status, &m.AssigneeID, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.Matter{}, err
	}
	m.Status = domain.MatterStatus(status)
	return m, nil
}

func scanMatters(rows pgx.Rows) ([]domain.Matter, error) {
	var matters []domain.Matter
	for rows.Next() {
		m, err := scanMatter(rows)
		if err != nil {
			return nil, err
		}
		matters = append(matters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if matters == nil {
		matters = []domain.Matter{}
	}

	return matters, nil
}

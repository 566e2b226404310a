// Package client implements the Client repository using PostgreSQL.
// List uses squirrel for the dynamic filter; everything else is plain SQL.
package client

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides client persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new client repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const clientColumns = `id, organization_id, name, email, phone, notes,
       created_by, created_at, updated_at, deleted_at`

const createClientSQL = `
INSERT INTO clients (id, organization_id, name, email, phone, notes,
                     created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const getClientByIDSQL = `
SELECT ` + clientColumns + `
FROM clients
WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL`

const updateClientSQL = `
UPDATE clients SET name = $3, email = $4, phone = $5, notes = $6, updated_at = $7
WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL`

const softDeleteClientSQL = `
UPDATE clients SET deleted_at = $3, updated_at = $3
WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL`

const countActiveMattersSQL = `
SELECT count(*) FROM matters
WHERE organization_id = $1 AND client_id = $2 AND status IN ('open', 'in_progress')`

// Create inserts a new client.
func (r *Repo) Create(ctx context.Context, c domain.Client) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createClientSQL,
		c.ID, c.OrganizationID, c.Name, c.Email, c.Phone, c.Notes,
		c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "client", c.ID.String())
	}

	return nil
}

// GetByID returns a client scoped by organization. Soft-deleted clients
// behave as not found.
func (r *Repo) GetByID(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanClient(querier.QueryRow(ctx, getClientByIDSQL, clientID, orgID))
	if err != nil {
		return domain.Client{}, postgres.MapError(err, "client", clientID.String())
	}

	return c, nil
}

// List returns clients matching the filter, newest first.
func (r *Repo) List(ctx context.Context, orgID uuid.UUID, filter domain.ClientFilter) ([]domain.Client, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	q := squirrel.Select("id", "organization_id", "name", "email", "phone", "notes",
		"created_by", "created_at", "updated_at", "deleted_at").
		From("clients").
		Where(squirrel.Eq{"organization_id": orgID}).
		Where("deleted_at IS NULL").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.NameContains != nil {
		q = q.Where(squirrel.ILike{"name": "%" + *filter.NameContains + "%"})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build client list query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients, err := scanClients(rows)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	return clients, nil
}

// Update replaces the mutable fields of a client.
// Returns domain.ErrNotFound if the client does not exist or is deleted.
func (r *Repo) Update(ctx context.Context, c domain.Client) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateClientSQL,
		c.ID, c.OrganizationID, c.Name, c.Email, c.Phone, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "client", c.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

// SoftDelete marks a client deleted without removing the row.
func (r *Repo) SoftDelete(ctx context.Context, c domain.Client) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, softDeleteClientSQL, c.ID, c.OrganizationID, c.DeletedAt)
	if err != nil {
		return postgres.MapError(err, "client", c.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

// CountActiveMatters returns the matters still blocking deletion of a client.
func (r *Repo) CountActiveMatters(ctx context.Context, orgID, clientID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countActiveMattersSQL, orgID, clientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active matters: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Email, &c.Phone, &c.Notes,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

func scanClients(rows pgx.Rows) ([]domain.Client, error) {
	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if clients == nil {
		clients = []domain.Client{}
	}

	return clients, nil
}

// Package organization implements the Organization repository using PostgreSQL.
package organization

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides organization persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createOrgSQL = `
INSERT INTO organizations (id, name, plan, settings, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const getOrgByIDSQL = `
SELECT id, name, plan, settings, created_at, updated_at
FROM organizations
WHERE id = $1`

const updateOrgSettingsSQL = `
UPDATE organizations SET settings = $2, updated_at = $3
WHERE id = $1`

const updateOrgPlanSQL = `
UPDATE organizations SET plan = $2, updated_at = $3
WHERE id = $1`

// Create inserts a new organization.
func (r *Repo) Create(ctx context.Context, org domain.Organization) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	settings, err := json.Marshal(org.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = querier.Exec(ctx, createOrgSQL,
		org.ID, org.Name, org.Plan, settings, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "organization", org.ID.String())
	}

	return nil
}

// GetByID returns an organization by primary key.
func (r *Repo) GetByID(ctx context.Context, orgID uuid.UUID) (domain.Organization, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		org      domain.Organization
		plan     string
		settings []byte
	)
	err := querier.QueryRow(ctx, getOrgByIDSQL, orgID).Scan(
		&org.ID, &org.Name, &plan, &settings, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return domain.Organization{}, postgres.MapError(err, "organization", orgID.String())
	}

	org.Plan = domain.PlanTier(plan)
	if err := json.Unmarshal(settings, &org.Settings); err != nil {
		return domain.Organization{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	return org, nil
}

// UpdateSettings replaces the organization's settings document.
func (r *Repo) UpdateSettings(ctx context.Context, org domain.Organization) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	settings, err := json.Marshal(org.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tag, err := querier.Exec(ctx, updateOrgSettingsSQL, org.ID, settings, org.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "organization", org.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("organization %s: %w", org.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePlan changes the organization's plan tier.
func (r *Repo) UpdatePlan(ctx context.Context, org domain.Organization) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateOrgPlanSQL, org.ID, org.Plan, org.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "organization", org.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("organization %s: %w", org.ID, domain.ErrNotFound)
	}

	return nil
}

// Package membership implements the Membership repository using PostgreSQL.
// The (organization_id, user_id) pair is the primary key: a user holds at
// most one role per organization.
package membership

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides membership persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new membership repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createMembershipSQL = `
INSERT INTO memberships (organization_id, user_id, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

const getMembershipSQL = `
SELECT organization_id, user_id, role, created_at, updated_at
FROM memberships
WHERE organization_id = $1 AND user_id = $2`

const listMembershipsSQL = `
SELECT organization_id, user_id, role, created_at, updated_at
FROM memberships
WHERE organization_id = $1
ORDER BY created_at ASC`

const countByRoleSQL = `
SELECT count(*) FROM memberships
WHERE organization_id = $1 AND role = $2`

const deleteMembershipSQL = `
DELETE FROM memberships
WHERE organization_id = $1 AND user_id = $2`

// Create inserts a membership. An existing (org, user) pair results in
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, m domain.Membership) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createMembershipSQL,
		m.OrganizationID, m.UserID, m.Role, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "membership", m.UserID.String())
	}

	return nil
}

// Get returns the membership for a user in an organization.
func (r *Repo) Get(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMembership(querier.QueryRow(ctx, getMembershipSQL, orgID, userID))
	if err != nil {
		return domain.Membership{}, postgres.MapError(err, "membership", userID.String())
	}

	return m, nil
}

// ListByOrganization returns all memberships in an organization, oldest first.
func (r *Repo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listMembershipsSQL, orgID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	members, err := scanMemberships(rows)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	return members, nil
}

// CountByRole returns the number of members holding role in an organization.
func (r *Repo) CountByRole(ctx context.Context, orgID uuid.UUID, role domain.Role) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByRoleSQL, orgID, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("count memberships by role: %w", err)
	}

	return count, nil
}

// Delete removes a membership.
// Returns domain.ErrNotFound if the membership does not exist.
func (r *Repo) Delete(ctx context.Context, orgID, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteMembershipSQL, orgID, userID)
	if err != nil {
		return postgres.MapError(err, "membership", userID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("membership %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembership(row rowScanner) (domain.Membership, error) {
	var (
		m    domain.Membership
		role string
	)
	if err := row.Scan(&m.OrganizationID, &m.UserID, &role, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.Membership{}, err
	}
	m.Role = domain.Role(role)
	return m, nil
}

func scanMemberships(rows pgx.Rows) ([]domain.Membership, error) {
	var members []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if members == nil {
		members = []domain.Membership{}
	}

	return members, nil
}

// Package invitation implements the Invitation repository using PostgreSQL.
package invitation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides invitation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new invitation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const invitationColumns = `id, organization_id, code, role, email, status,
       invited_by, expires_at, created_at, updated_at`

const createInvitationSQL = `
INSERT INTO invitations (id, organization_id, code, role, email, status,
                         invited_by, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const getInvitationByCodeSQL = `
SELECT ` + invitationColumns + `
FROM invitations
WHERE code = $1`

const getInvitationByIDSQL = `
SELECT ` + invitationColumns + `
FROM invitations
WHERE id = $1 AND organization_id = $2`

const listInvitationsSQL = `
SELECT ` + invitationColumns + `
FROM invitations
WHERE organization_id = $1
ORDER BY created_at DESC`

// updateInvitationStatusSQL is guarded on the current status so concurrent
// accepts of the same code cannot both succeed.
const updateInvitationStatusSQL = `
UPDATE invitations SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

// Create inserts a new invitation. A duplicate code results in
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, inv domain.Invitation) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createInvitationSQL,
		inv.ID, inv.OrganizationID, inv.Code, inv.Role, inv.Email, inv.Status,
		inv.InvitedBy, inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "invitation", inv.ID.String())
	}

	return nil
}

// GetByCode returns an invitation by its code. Codes are globally unique,
// so no organization scope applies: the accepting user is not a member yet.
func (r *Repo) GetByCode(ctx context.Context, code string) (domain.Invitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	inv, err := scanInvitation(querier.QueryRow(ctx, getInvitationByCodeSQL, code))
	if err != nil {
		return domain.Invitation{}, postgres.MapError(err, "invitation", code)
	}

	return inv, nil
}

// GetByID returns an invitation scoped by organization.
func (r *Repo) GetByID(ctx context.Context, orgID, invitationID uuid.UUID) (domain.Invitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	inv, err := scanInvitation(querier.QueryRow(ctx, getInvitationByIDSQL, invitationID, orgID))
	if err != nil {
		return domain.Invitation{}, postgres.MapError(err, "invitation", invitationID.String())
	}

	return inv, nil
}

// ListByOrganization returns an organization's invitations, newest first.
func (r *Repo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Invitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listInvitationsSQL, orgID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	invs, err := scanInvitations(rows)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	return invs, nil
}

// TransitionStatus moves an invitation from one status to another.
// Returns domain.ErrConflict if the invitation is no longer in from status,
// which happens when two accepts race on the same code.
func (r *Repo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.InvitationStatus, updatedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateInvitationStatusSQL, id, from, to, updatedAt)
	if err != nil {
		return postgres.MapError(err, "invitation", id.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invitation %s: no longer %s: %w", id, from, domain.ErrConflict)
	}

	return nil
}

func scanInvitation(row rowScanner) (domain.Invitation, error) {
	var (
		inv    domain.Invitation
		role   string
		status string
	)
	if err := row.Scan(&inv.ID, &inv.OrganizationID, &inv.Code, &role, &inv.Email, &status,
		&inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return domain.Invitation{}, err
	}
	inv.Role = domain.Role(role)
	inv.Status = domain.InvitationStatus(status)
	return inv, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitations(rows pgx.Rows) ([]domain.Invitation, error) {
	var invs []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if invs == nil {
		invs = []domain.Invitation{}
	}

	return invs, nil
}

package organization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/event"
	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

// Create provisions an organization and makes the caller its OWNER.
// Both rows are written in one transaction: an organization without an
// owner must never become visible.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Organization, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Organization{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Organization{}, err
	}

	plan := input.Plan
	if plan == "" {
		plan = domain.PlanFree
	}

	now := s.now().UTC()
	org := domain.Organization{
		ID:        uuid.New(),
		Name:      input.Name,
		Plan:      plan,
		Settings:  domain.DefaultOrgSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	founder := domain.Membership{
		OrganizationID: org.ID,
		UserID:         callerID,
		Role:           domain.RoleOwner,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orgs.Create(txCtx, org); err != nil {
			return fmt.Errorf("create organization: %w", err)
		}
		if err := s.memberships.Create(txCtx, founder); err != nil {
			return fmt.Errorf("create founder membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Organization{}, err
	}

	s.audit.Record(ctx, org.ID, callerID, domain.AuditActionCreate, domain.EntityTypeOrganization, &org.ID,
		map[string]any{"name": org.Name, "plan": org.Plan.String()})

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: org.ID,
		EventType:      "organization.created",
		EntityType:     domain.EntityTypeOrganization,
		EntityID:       org.ID,
		Actor:          domain.UserActor(callerID),
		Payload:        map[string]any{"name": org.Name},
	})

	return org, nil
}

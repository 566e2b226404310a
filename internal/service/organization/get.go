package organization

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

// Get returns an organization. Membership alone suffices.
func (s *Service) Get(ctx context.Context, orgID uuid.UUID) (domain.Organization, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{}); err != nil {
		return domain.Organization{}, err
	}

	return s.orgs.GetByID(ctx, orgID)
}

// ListMembers returns all memberships in an organization.
func (s *Service) ListMembers(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{}); err != nil {
		return nil, err
	}

	return s.memberships.ListByOrganization(ctx, orgID)
}

package organization

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

// UpdateSettings applies partial changes to organization settings.
func (s *Service) UpdateSettings(ctx context.Context, orgID uuid.UUID, input UpdateSettingsInput) (domain.Organization, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermOrgSettings})
	if err != nil {
		return domain.Organization{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Organization{}, err
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return domain.Organization{}, err
	}

	changes := map[string]any{}
	if input.Timezone != nil {
		org.Settings.Timezone = *input.Timezone
		changes["timezone"] = *input.Timezone
	}
	if input.BusinessHours != nil {
		org.Settings.BusinessHours = *input.BusinessHours
		changes["businessHours"] = *input.BusinessHours
	}
	if input.DefaultVisibility != nil {
		org.Settings.DefaultVisibility = *input.DefaultVisibility
		changes["defaultVisibility"] = input.DefaultVisibility.String()
	}
	org.UpdatedAt = s.now().UTC()

	if err := s.orgs.UpdateSettings(ctx, org); err != nil {
		return domain.Organization{}, err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionUpdate, domain.EntityTypeOrganization, &orgID, changes)

	return org, nil
}

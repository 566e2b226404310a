package organization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

// RemoveMember removes a user from an organization. The last OWNER can
// never be removed: an organization without an owner would be orphaned.
func (s *Service) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermMemberManage})
	if err != nil {
		return err
	}

	member, err := s.memberships.Get(ctx, orgID, userID)
	if err != nil {
		return err
	}

	if member.Role == domain.RoleOwner {
		owners, err := s.memberships.CountByRole(ctx, orgID, domain.RoleOwner)
		if err != nil {
			return fmt.Errorf("count owners: %w", err)
		}
		if owners <= 1 {
			return fmt.Errorf("cannot remove the last owner: %w", domain.ErrConflict)
		}
	}

	if err := s.memberships.Delete(ctx, orgID, userID); err != nil {
		return err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionDelete, domain.EntityTypeMembership, &userID,
		map[string]any{"role": member.Role.String()})

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: orgID,
		EventType:      "member.removed",
		EntityType:     domain.EntityTypeMembership,
		EntityID:       userID,
		Actor:          domain.UserActor(callerID),
		Payload:        map[string]any{"role": member.Role.String()},
	})

	return nil
}

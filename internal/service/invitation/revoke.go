package invitation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

// Revoke cancels a pending invitation. Used or already revoked
// invitations cannot be revoked.
func (s *Service) Revoke(ctx context.Context, orgID, invitationID uuid.UUID) error {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Permission: entitlement.PermInvitationManage,
	})
	if err != nil {
		return err
	}

	inv, err := s.invitations.GetByID(ctx, orgID, invitationID)
	if err != nil {
		return fmt.Errorf("get invitation: %w", err)
	}
	if inv.Status != domain.InvitationStatusPending {
		return fmt.Errorf("invitation is %s: %w", inv.Status, domain.ErrConflict)
	}

	now := s.now().UTC()
	if err := s.invitations.TransitionStatus(ctx, inv.ID, domain.InvitationStatusPending, domain.InvitationStatusRevoked, now); err != nil {
		return fmt.Errorf("revoke invitation: %w", err)
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionUpdate, domain.EntityTypeInvitation, &inv.ID,
		map[string]any{"status": domain.InvitationStatusRevoked.String()})

	return nil
}

// List returns all invitations of the organization, newest first.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]domain.Invitation, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Permission: entitlement.PermInvitationManage,
	}); err != nil {
		return nil, err
	}

	invs, err := s.invitations.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	return invs, nil
}

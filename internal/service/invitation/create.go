package invitation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

// Create issues a single-use invitation code at a fixed role.
// OWNER and ADMIN cannot be granted this way; those roles are assigned
// directly by an owner.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, input CreateInput) (domain.Invitation, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Permission: entitlement.PermInvitationManage,
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Invitation{}, err
	}

	code, err := generateCode()
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("generate invitation code: %w", err)
	}

	now := s.now().UTC()
	inv := domain.Invitation{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Code:           code,
		Role:           input.Role,
		Email:          input.Email,
		Status:         domain.InvitationStatusPending,
		InvitedBy:      callerID,
		ExpiresAt:      now.Add(s.ttl),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.invitations.Create(ctx, inv); err != nil {
		return domain.Invitation{}, fmt.Errorf("create invitation: %w", err)
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionCreate, domain.EntityTypeInvitation, &inv.ID,
		map[string]any{"role": inv.Role.String()})

	return inv, nil
}

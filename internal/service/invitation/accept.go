package invitation

import (
	"context"
	"errors"
	"fmt"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/event"
	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

// Accept redeems an invitation code for the calling user.
// The status flip and the membership insert run in one transaction; the
// guarded pending->used transition makes concurrent redeems of the same
// code lose with a conflict instead of creating two memberships.
func (s *Service) Accept(ctx context.Context, code string) (domain.Membership, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Membership{}, domain.ErrUnauthorized
	}

	if code == "" {
		return domain.Membership{}, domain.NewValidationError("code", "must not be empty")
	}

	inv, err := s.invitations.GetByCode(ctx, code)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("get invitation by code: %w", err)
	}

	now := s.now().UTC()
	if inv.Status != domain.InvitationStatusPending {
		return domain.Membership{}, fmt.Errorf("invitation is %s: %w", inv.Status, domain.ErrConflict)
	}
	if inv.IsExpired(now) {
		return domain.Membership{}, domain.NewValidationError("code", "invitation has expired")
	}

	membership := domain.Membership{
		OrganizationID: inv.OrganizationID,
		UserID:         callerID,
		Role:           inv.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.invitations.TransitionStatus(txCtx, inv.ID, domain.InvitationStatusPending, domain.InvitationStatusUsed, now); err != nil {
			return fmt.Errorf("mark invitation used: %w", err)
		}
		if err := s.memberships.Create(txCtx, membership); err != nil {
			return fmt.Errorf("create membership: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.Membership{}, fmt.Errorf("already a member: %w", domain.ErrConflict)
		}
		return domain.Membership{}, err
	}

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: inv.OrganizationID,
		EventType:      "member.joined",
		EntityType:     domain.EntityTypeMembership,
		EntityID:       callerID,
		Actor:          domain.UserActor(callerID),
		Payload:        map[string]any{"role": inv.Role.String()},
	})

	return membership, nil
}

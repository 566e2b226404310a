package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

// OrgStats summarizes an organization for its admins. The outbox counts
// span all tenants; they are an operational signal, not billing data.
type OrgStats struct {
	MemberCount   int
	MembersByRole map[domain.Role]int
	OutboxByState map[domain.OutboxStatus]int
	GeneratedAt   string
}

// Stats returns membership and dispatch queue counts.
func (s *Service) Stats(ctx context.Context, orgID uuid.UUID) (OrgStats, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Permission: entitlement.PermOrgSettings,
	}); err != nil {
		return OrgStats{}, err
	}

	members, err := s.memberships.ListByOrganization(ctx, orgID)
	if err != nil {
		return OrgStats{}, fmt.Errorf("list members: %w", err)
	}

	byRole := make(map[domain.Role]int, len(members))
	for _, m := range members {
		byRole[m.Role]++
	}

	byState, err := s.outbox.CountByStatus(ctx)
	if err != nil {
		return OrgStats{}, fmt.Errorf("count outbox: %w", err)
	}

	return OrgStats{
		MemberCount:   len(members),
		MembersByRole: byRole,
		OutboxByState: byState,
		GeneratedAt:   s.now().UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}

// AuditTrail returns the organization's audit records, newest first.
func (s *Service) AuditTrail(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Permission: entitlement.PermOrgSettings,
	}); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.audit.ListByOrganization(ctx, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}

	return records, nil
}

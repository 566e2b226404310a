// Package admin implements organization-level reporting: usage stats,
// the audit trail and full data exports.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

type membershipRepo interface {
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error)
}

type clientRepo interface {
	List(ctx context.Context, orgID uuid.UUID, filter domain.ClientFilter) ([]domain.Client, error)
}

type matterRepo interface {
	ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Matter, error)
}

type invoiceRepo interface {
	ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Invoice, error)
}

type outboxRepo interface {
	CountByStatus(ctx context.Context) (map[domain.OutboxStatus]int, error)
}

type auditRepo interface {
	ListByOrganization(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

type entitlementEvaluator interface {
	Evaluate(ctx context.Context, callerID, orgID uuid.UUID, req entitlement.Requirement) (entitlement.Decision, error)
}

// Service implements admin reporting.
type Service struct {
	log          *slog.Logger
	memberships  membershipRepo
	clients      clientRepo
	matters      matterRepo
	invoices     invoiceRepo
	outbox       outboxRepo
	audit        auditRepo
	entitlements entitlementEvaluator
	now          func() time.Time
}

// NewService creates a new admin service.
func NewService(
	logger *slog.Logger,
	memberships membershipRepo,
	clients clientRepo,
	matters matterRepo,
	invoices invoiceRepo,
	outbox outboxRepo,
	audit auditRepo,
	entitlements entitlementEvaluator,
) *Service {
	return &Service{
		log:          logger.With("service", "admin"),
		memberships:  memberships,
		clients:      clients,
		matters:      matters,
		invoices:     invoices,
		outbox:       outbox,
		audit:        audit,
		entitlements: entitlements,
		now:          time.Now,
	}
}

func (s *Service) authorize(ctx context.Context, orgID uuid.UUID, req entitlement.Requirement) (uuid.UUID, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}

	decision, err := s.entitlements.Evaluate(ctx, callerID, orgID, req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("evaluate entitlement: %w", err)
	}
	if !decision.Allowed {
		return uuid.Nil, entitlement.DecisionError(decision)
	}

	return callerID, nil
}

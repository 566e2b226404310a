// Package organization implements organization and membership management.
package organization

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type orgRepo interface {
	Create(ctx context.Context, org domain.Organization) error
	GetByID(ctx context.Context, orgID uuid.UUID) (domain.Organization, error)
	UpdateSettings(ctx context.Context, org domain.Organization) error
}

type membershipRepo interface {
	Create(ctx context.Context, m domain.Membership) error
	Get(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error)
	CountByRole(ctx context.Context, orgID uuid.UUID, role domain.Role) (int, error)
	Delete(ctx context.Context, orgID, userID uuid.UUID) error
}

type entitlementEvaluator interface {
	Evaluate(ctx context.Context, callerID, orgID uuid.UUID, req entitlement.Requirement) (entitlement.Decision, error)
}

type eventEmitter interface {
	EmitBestEffort(ctx context.Context, p event.Params)
}

type auditRecorder interface {
	Record(ctx context.Context, orgID, actorID uuid.UUID, action domain.AuditAction, entityType domain.EntityType, entityID *uuid.UUID, metadata map[string]any)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements organization business logic.
type Service struct {
	log          *slog.Logger
	orgs         orgRepo
	memberships  membershipRepo
	entitlements entitlementEvaluator
	emitter      eventEmitter
	audit        auditRecorder
	tx           txManager
	now          func() time.Time
}

// NewService creates a new organization service.
func NewService(
	logger *slog.Logger,
	orgs orgRepo,
	memberships membershipRepo,
	entitlements entitlementEvaluator,
	emitter eventEmitter,
	audit auditRecorder,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "organization"),
		orgs:         orgs,
		memberships:  memberships,
		entitlements: entitlements,
		emitter:      emitter,
		audit:        audit,
		tx:           tx,
		now:          time.Now,
	}
}

// authorize resolves the caller from context and runs the entitlement gates.
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

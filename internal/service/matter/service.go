// Package matter implements matter (case) management.
package matter

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

type matterRepo interface {
	Create(ctx context.Context, m domain.Matter) error
	GetByID(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error)
	ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Matter, error)
	ListByAssignee(ctx context.Context, orgID, assigneeID uuid.UUID, limit, offset int) ([]domain.Matter, error)
	UpdateStatus(ctx context.Context, m domain.Matter) error
	UpdateAssignee(ctx context.Context, m domain.Matter) error
}

type clientRepo interface {
	GetByID(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error)
}

type membershipRepo interface {
	Get(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error)
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

// Service implements matter business logic.
type Service struct {
	log          *slog.Logger
	matters      matterRepo
	clients      clientRepo
	memberships  membershipRepo
	entitlements entitlementEvaluator
	emitter      eventEmitter
	audit        auditRecorder
	now          func() time.Time
}

// NewService creates a new matter service.
func NewService(
	logger *slog.Logger,
	matters matterRepo,
	clients clientRepo,
	memberships membershipRepo,
	entitlements entitlementEvaluator,
	emitter eventEmitter,
	audit auditRecorder,
) *Service {
	return &Service{
		log:          logger.With("service", "matter"),
		matters:      matters,
		clients:      clients,
		memberships:  memberships,
		entitlements: entitlements,
		emitter:      emitter,
		audit:        audit,
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

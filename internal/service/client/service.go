// Package client implements client (represented party) management.
package client

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

type clientRepo interface {
	Create(ctx context.Context, c domain.Client) error
	GetByID(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error)
	List(ctx context.Context, orgID uuid.UUID, filter domain.ClientFilter) ([]domain.Client, error)
	Update(ctx context.Context, c domain.Client) error
	SoftDelete(ctx context.Context, c domain.Client) error
	CountActiveMatters(ctx context.Context, orgID, clientID uuid.UUID) (int, error)
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

// Service implements client business logic.
type Service struct {
	log          *slog.Logger
	clients      clientRepo
	entitlements entitlementEvaluator
	emitter      eventEmitter
	audit        auditRecorder
	now          func() time.Time
}

// NewService creates a new client service.
func NewService(
	logger *slog.Logger,
	clients clientRepo,
	entitlements entitlementEvaluator,
	emitter eventEmitter,
	audit auditRecorder,
) *Service {
	return &Service{
		log:          logger.With("service", "client"),
		clients:      clients,
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

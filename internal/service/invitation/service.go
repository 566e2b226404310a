// Package invitation implements invitation-code based onboarding.
package invitation

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

// DefaultTTL is how long a fresh invitation stays usable.
const DefaultTTL = 7 * 24 * time.Hour

type invitationRepo interface {
	Create(ctx context.Context, inv domain.Invitation) error
	GetByCode(ctx context.Context, code string) (domain.Invitation, error)
	GetByID(ctx context.Context, orgID, invitationID uuid.UUID) (domain.Invitation, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Invitation, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.InvitationStatus, updatedAt time.Time) error
}

type membershipRepo interface {
	Create(ctx context.Context, m domain.Membership) error
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

// Service implements invitation business logic.
type Service struct {
	log          *slog.Logger
	invitations  invitationRepo
	memberships  membershipRepo
	entitlements entitlementEvaluator
	emitter      eventEmitter
	audit        auditRecorder
	tx           txManager
	now          func() time.Time
	ttl          time.Duration
}

// NewService creates a new invitation service.
func NewService(
	logger *slog.Logger,
	invitations invitationRepo,
	memberships membershipRepo,
	entitlements entitlementEvaluator,
	emitter eventEmitter,
	audit auditRecorder,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "invitation"),
		invitations:  invitations,
		memberships:  memberships,
		entitlements: entitlements,
		emitter:      emitter,
		audit:        audit,
		tx:           tx,
		now:          time.Now,
		ttl:          DefaultTTL,
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

// generateCode returns a cryptographically random, URL-safe invitation code.
func generateCode() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

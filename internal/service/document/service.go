// Package document implements matter document storage via presigned
// object-store URLs. Files never pass through the API server.
package document

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

type documentRepo interface {
	Create(ctx context.Context, d domain.Document) error
	GetByID(ctx context.Context, orgID, documentID uuid.UUID) (domain.Document, error)
	ListByMatter(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Document, error)
	UpdateExtraction(ctx context.Context, d domain.Document) error
}

type matterRepo interface {
	GetByID(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error)
}

type objectStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	TTL() time.Duration
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

// Service implements document business logic.
type Service struct {
	log            *slog.Logger
	documents      documentRepo
	matters        matterRepo
	store          objectStore
	entitlements   entitlementEvaluator
	emitter        eventEmitter
	audit          auditRecorder
	now            func() time.Time
	maxUploadBytes int64
}

// NewService creates a new document service.
func NewService(
	logger *slog.Logger,
	documents documentRepo,
	matters matterRepo,
	store objectStore,
	entitlements entitlementEvaluator,
	emitter eventEmitter,
	audit auditRecorder,
	maxUploadBytes int64,
) *Service {
	return &Service{
		log:            logger.With("service", "document"),
		documents:      documents,
		matters:        matters,
		store:          store,
		entitlements:   entitlements,
		emitter:        emitter,
		audit:          audit,
		now:            time.Now,
		maxUploadBytes: maxUploadBytes,
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

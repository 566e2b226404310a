// Package audit appends immutable compliance-trail records.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

type auditRepo interface {
	Create(ctx context.Context, rec domain.AuditRecord) error
}

// Recorder writes audit records best-effort: the primary business mutation
// has already committed when Record runs, so a failed audit write is
// logged, never propagated, and never rolls anything back.
type Recorder struct {
	repo auditRepo
	now  func() time.Time
	log  *slog.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(log *slog.Logger, repo auditRepo) *Recorder {
	return &Recorder{
		repo: repo,
		now:  time.Now,
		log:  log.With("component", "audit_recorder"),
	}
}

// Record appends one audit record describing who did what to which entity.
func (r *Recorder) Record(ctx context.Context, orgID, actorID uuid.UUID, action domain.AuditAction, entityType domain.EntityType, entityID *uuid.UUID, metadata map[string]any) {
	rec := domain.AuditRecord{
		ID:             uuid.New(),
		OrganizationID: orgID,
		ActorID:        actorID,
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		Metadata:       metadata,
		CreatedAt:      r.now().UTC(),
	}

	if err := r.repo.Create(ctx, rec); err != nil {
		r.log.ErrorContext(ctx, "audit write failed",
			slog.String("org_id", orgID.String()),
			slog.String("action", action.String()),
			slog.String("entity_type", entityType.String()),
			slog.String("error", err.Error()),
		)
	}
}

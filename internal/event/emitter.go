// Package event records domain events and their delivery obligations.
//
// Emit writes the event document and its initial outbox record in one
// transaction: either both become visible or neither does. The outbox
// record's id is derived deterministically from (orgID, eventID), so a
// duplicate creation attempt for the same event collapses into a no-op
// instead of a second delivery obligation.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

type eventRepo interface {
	Create(ctx context.Context, ev domain.DomainEvent) error
}

type outboxRepo interface {
	// Create inserts the record, ignoring a duplicate of the same id.
	Create(ctx context.Context, rec domain.OutboxRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Params describes the fact being recorded.
type Params struct {
	OrganizationID uuid.UUID
	MatterID       *uuid.UUID
	EventType      string
	EntityType     domain.EntityType
	EntityID       uuid.UUID
	Actor          domain.Actor
	Visibility     *domain.Visibility // nil -> internal audience
	Payload        map[string]any
}

// Emitter records domain events with their outbox records.
type Emitter struct {
	events eventRepo
	outbox outboxRepo
	tx     txManager
	now    func() time.Time
	log    *slog.Logger
}

// NewEmitter creates an Emitter.
func NewEmitter(log *slog.Logger, events eventRepo, outbox outboxRepo, tx txManager) *Emitter {
	return &Emitter{
		events: events,
		outbox: outbox,
		tx:     tx,
		now:    time.Now,
		log:    log.With("component", "event_emitter"),
	}
}

// Emit records the event and enqueues its delivery obligation atomically.
// Each call generates a fresh event id, so emitting is not idempotent; the
// deterministic outbox id protects the dispatch side, not the caller.
func (e *Emitter) Emit(ctx context.Context, p Params) (*domain.DomainEvent, error) {
	if p.OrganizationID == uuid.Nil {
		return nil, domain.NewValidationError("organizationId", "required")
	}
	if p.EventType == "" {
		return nil, domain.NewValidationError("eventType", "required")
	}
	if !p.EntityType.IsValid() {
		return nil, domain.NewValidationError("entityType", "unknown entity type")
	}

	visibility := domain.Visibility{Audience: domain.AudienceInternal}
	if p.Visibility != nil {
		if !p.Visibility.Audience.IsValid() {
			return nil, domain.NewValidationError("visibility.audience", "unknown audience")
		}
		visibility = *p.Visibility
	}

	now := e.now().UTC()
	ev := domain.DomainEvent{
		ID:             uuid.New(),
		OrganizationID: p.OrganizationID,
		MatterID:       p.MatterID,
		EventType:      p.EventType,
		EntityType:     p.EntityType,
		EntityID:       p.EntityID,
		Actor:          p.Actor,
		Visibility:     visibility,
		Payload:        p.Payload,
		OccurredAt:     now,
	}
	rec := domain.NewOutboxRecord(p.OrganizationID, ev.ID, now)

	err := e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := e.events.Create(txCtx, ev); err != nil {
			return fmt.Errorf("create domain event: %w", err)
		}
		if err := e.outbox.Create(txCtx, rec); err != nil {
			return fmt.Errorf("create outbox record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ev, nil
}

// EmitBestEffort records the event, swallowing any failure. The triggering
// business mutation has already committed; the primary resource state is
// the source of truth and a lost notification must never surface as a
// user-facing error. Failures are logged for health monitoring.
func (e *Emitter) EmitBestEffort(ctx context.Context, p Params) {
	if _, err := e.Emit(ctx, p); err != nil {
		e.log.ErrorContext(ctx, "domain event emission failed",
			slog.String("org_id", p.OrganizationID.String()),
			slog.String("event_type", p.EventType),
			slog.String("error", err.Error()),
		)
	}
}

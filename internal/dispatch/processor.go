// Package dispatch delivers outbox records to a notification sink.
//
// A record is claimed by a conditional pending->processing transition, so
// no two processor instances ever attempt the same record concurrently;
// processing acts as an exclusive lock, and only the claiming instance may
// resolve the record to done, pending, or dead.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

type outboxStore interface {
	// ClaimDue atomically moves up to limit due pending records to
	// processing and returns them. Records already claimed by another
	// instance are skipped.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxRecord, error)
	// MarkDone resolves a processing record to done.
	MarkDone(ctx context.Context, id string, attempts int) error
	// Reschedule resolves a processing record back to pending with the
	// attempt count and the advanced next-attempt time.
	Reschedule(ctx context.Context, id string, attempts int, nextAttemptAt time.Time) error
	// MarkDead resolves a processing record to dead after the attempt
	// ceiling is reached. Terminal; kept for observability.
	MarkDead(ctx context.Context, id string, attempts int) error
}

type eventStore interface {
	GetByID(ctx context.Context, orgID, eventID uuid.UUID) (domain.DomainEvent, error)
}

// Notifier is the delivery sink. It is responsible for audience/role
// filtering based on the event's visibility.
type Notifier interface {
	Deliver(ctx context.Context, ev *domain.DomainEvent, rec domain.OutboxRecord) error
}

// Processor drains due outbox records.
type Processor struct {
	outbox   outboxStore
	events   eventStore
	notifier Notifier
	now      func() time.Time
	log      *slog.Logger

	batchSize int
	interval  time.Duration
}

// NewProcessor creates a Processor polling with the given batch size and
// interval.
func NewProcessor(log *slog.Logger, outbox outboxStore, events eventStore, notifier Notifier, batchSize int, interval time.Duration) *Processor {
	if batchSize <= 0 {
		batchSize = 50
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Processor{
		outbox:    outbox,
		events:    events,
		notifier:  notifier,
		now:       time.Now,
		log:       log.With("component", "outbox_dispatch"),
		batchSize: batchSize,
		interval:  interval,
	}
}

// Run polls for due records until the context is cancelled.
func (p *Processor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("outbox dispatch stopping")
			return
		case <-ticker.C:
			if _, err := p.ProcessDue(ctx); err != nil {
				p.log.ErrorContext(ctx, "dispatch cycle failed", slog.String("error", err.Error()))
			}
		}
	}
}

// ProcessDue claims and processes one batch of due records. Returns the
// number of records processed.
func (p *Processor) ProcessDue(ctx context.Context) (int, error) {
	records, err := p.outbox.ClaimDue(ctx, p.now().UTC(), p.batchSize)
	if err != nil {
		return 0, fmt.Errorf("claim due outbox records: %w", err)
	}

	for _, rec := range records {
		p.processOne(ctx, rec)
	}
	return len(records), nil
}

// processOne runs a single delivery attempt for a claimed record and
// resolves it. Resolution failures are logged; the record stays in
// processing and is recovered by an operator or a future sweep, never by
// a second concurrent delivery.
func (p *Processor) processOne(ctx context.Context, rec domain.OutboxRecord) {
	attempt := rec.Attempts + 1
	log := p.log.With(
		slog.String("outbox_id", rec.ID),
		slog.String("event_id", rec.EventID.String()),
		slog.Int("attempt", attempt),
	)

	ev, err := p.events.GetByID(ctx, rec.OrganizationID, rec.EventID)
	if err != nil {
		// The event is written in the same transaction as the record, so
		// a missing event means corruption, not a race. Dead-letter it.
		log.ErrorContext(ctx, "outbox record references missing event", slog.String("error", err.Error()))
		if derr := p.outbox.MarkDead(ctx, rec.ID, attempt); derr != nil {
			log.ErrorContext(ctx, "mark dead failed", slog.String("error", derr.Error()))
		}
		return
	}

	if err := p.notifier.Deliver(ctx, &ev, rec); err != nil {
		p.resolveFailure(ctx, log, rec, attempt, err)
		return
	}

	if err := p.outbox.MarkDone(ctx, rec.ID, attempt); err != nil {
		log.ErrorContext(ctx, "mark done failed", slog.String("error", err.Error()))
		return
	}
	log.InfoContext(ctx, "notification delivered")
}

func (p *Processor) resolveFailure(ctx context.Context, log *slog.Logger, rec domain.OutboxRecord, attempt int, cause error) {
	if attempt >= rec.MaxAttempts {
		if err := p.outbox.MarkDead(ctx, rec.ID, attempt); err != nil {
			log.ErrorContext(ctx, "mark dead failed", slog.String("error", err.Error()))
			return
		}
		log.ErrorContext(ctx, "delivery exhausted, record dead-lettered",
			slog.String("error", cause.Error()),
		)
		return
	}

	next := p.now().UTC().Add(domain.OutboxBackoff(attempt))
	if err := p.outbox.Reschedule(ctx, rec.ID, attempt, next); err != nil {
		log.ErrorContext(ctx, "reschedule failed", slog.String("error", err.Error()))
		return
	}
	log.WarnContext(ctx, "delivery failed, rescheduled",
		slog.Time("next_attempt_at", next),
		slog.String("error", cause.Error()),
	)
}

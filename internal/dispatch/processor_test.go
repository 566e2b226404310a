package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

func claimedRecord(attempts int) domain.OutboxRecord {
	orgID := uuid.New()
	eventID := uuid.New()
	return domain.OutboxRecord{
		ID:             domain.OutboxID(orgID, eventID),
		OrganizationID: orgID,
		EventID:        eventID,
		JobType:        domain.JobTypeNotificationDispatch,
		Status:         domain.OutboxStatusProcessing,
		Attempts:       attempts,
		MaxAttempts:    domain.OutboxMaxAttempts,
	}
}

func eventFor(rec domain.OutboxRecord) *eventStoreMock {
	return &eventStoreMock{
		GetByIDFunc: func(ctx context.Context, orgID, eventID uuid.UUID) (domain.DomainEvent, error) {
			return domain.DomainEvent{
				ID:             rec.EventID,
				OrganizationID: rec.OrganizationID,
				EventType:      "comment.added",
				EntityType:     domain.EntityTypeComment,
				Visibility:     domain.Visibility{Audience: domain.AudienceInternal},
			}, nil
		},
	}
}

func singleClaim(rec domain.OutboxRecord) func(ctx context.Context, now time.Time, limit int) ([]domain.OutboxRecord, error) {
	claimed := false
	return func(ctx context.Context, now time.Time, limit int) ([]domain.OutboxRecord, error) {
		if claimed {
			return nil, nil
		}
		claimed = true
		return []domain.OutboxRecord{rec}, nil
	}
}

func TestProcessDue_SuccessMarksDone(t *testing.T) {
	t.Parallel()

	rec := claimedRecord(0)
	store := &outboxStoreMock{
		ClaimDueFunc: singleClaim(rec),
		MarkDoneFunc: func(ctx context.Context, id string, attempts int) error { return nil },
	}
	notifier := &notifierMock{
		DeliverFunc: func(ctx context.Context, ev *domain.DomainEvent, r domain.OutboxRecord) error { return nil },
	}
	p := NewProcessor(slog.Default(), store, eventFor(rec), notifier, 10, time.Second)

	n, err := p.ProcessDue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("processed = %d, want 1", n)
	}

	done := store.MarkDoneCalls()
	if len(done) != 1 {
		t.Fatalf("MarkDone calls: got %d, want 1", len(done))
	}
	if done[0].ID != rec.ID || done[0].Attempts != 1 {
		t.Errorf("MarkDone(%q, %d), want (%q, 1)", done[0].ID, done[0].Attempts, rec.ID)
	}
	if len(store.RescheduleCalls()) != 0 || len(store.MarkDeadCalls()) != 0 {
		t.Error("successful delivery must not reschedule or dead-letter")
	}
}

func TestProcessDue_FailureReschedulesWithBackoff(t *testing.T) {
	t.Parallel()

	rec := claimedRecord(0) // first attempt
	store := &outboxStoreMock{
		ClaimDueFunc:   singleClaim(rec),
		RescheduleFunc: func(ctx context.Context, id string, attempts int, next time.Time) error { return nil },
	}
	notifier := &notifierMock{
		DeliverFunc: func(ctx context.Context, ev *domain.DomainEvent, r domain.OutboxRecord) error {
			return errors.New("sink unreachable")
		},
	}
	p := NewProcessor(slog.Default(), store, eventFor(rec), notifier, 10, time.Second)
	before := time.Now().UTC()

	if _, err := p.ProcessDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := store.RescheduleCalls()
	if len(calls) != 1 {
		t.Fatalf("Reschedule calls: got %d, want 1", len(calls))
	}
	if calls[0].Attempts != 1 {
		t.Errorf("attempts = %d, want 1", calls[0].Attempts)
	}
	wantDelay := domain.OutboxBackoff(1)
	gotDelay := calls[0].NextAttemptAt.Sub(before)
	if gotDelay < wantDelay || gotDelay > wantDelay+10*time.Second {
		t.Errorf("nextAttemptAt delay = %v, want about %v", gotDelay, wantDelay)
	}
}

func TestProcessDue_BackoffGrowsPerAttempt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priorAttempts int
		wantDelay     time.Duration
	}{
		{0, 1 * time.Minute},
		{1, 5 * time.Minute},
		{2, 15 * time.Minute},
		{3, 60 * time.Minute},
	}
	for _, tt := range tests {
		rec := claimedRecord(tt.priorAttempts)
		store := &outboxStoreMock{
			ClaimDueFunc:   singleClaim(rec),
			RescheduleFunc: func(ctx context.Context, id string, attempts int, next time.Time) error { return nil },
			MarkDeadFunc:   func(ctx context.Context, id string, attempts int) error { return nil },
		}
		notifier := &notifierMock{
			DeliverFunc: func(ctx context.Context, ev *domain.DomainEvent, r domain.OutboxRecord) error {
				return errors.New("down")
			},
		}
		p := NewProcessor(slog.Default(), store, eventFor(rec), notifier, 10, time.Second)
		before := time.Now().UTC()

		if _, err := p.ProcessDue(context.Background()); err != nil {
			t.Fatalf("attempts=%d: %v", tt.priorAttempts, err)
		}
		calls := store.RescheduleCalls()
		if len(calls) != 1 {
			t.Fatalf("attempts=%d: Reschedule calls = %d, want 1", tt.priorAttempts, len(calls))
		}
		got := calls[0].NextAttemptAt.Sub(before)
		if got < tt.wantDelay || got > tt.wantDelay+10*time.Second {
			t.Errorf("attempts=%d: delay = %v, want about %v", tt.priorAttempts, got, tt.wantDelay)
		}
	}
}

// After the fifth failed attempt the record is dead-lettered and there is
// no sixth delivery.
func TestProcessDue_DeadLetterAtCeiling(t *testing.T) {
	t.Parallel()

	rec := claimedRecord(4) // four failures so far; this is attempt five
	store := &outboxStoreMock{
		ClaimDueFunc: singleClaim(rec),
		MarkDeadFunc: func(ctx context.Context, id string, attempts int) error { return nil },
	}
	notifier := &notifierMock{
		DeliverFunc: func(ctx context.Context, ev *domain.DomainEvent, r domain.OutboxRecord) error {
			return errors.New("still down")
		},
	}
	p := NewProcessor(slog.Default(), store, eventFor(rec), notifier, 10, time.Second)

	if _, err := p.ProcessDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dead := store.MarkDeadCalls()
	if len(dead) != 1 {
		t.Fatalf("MarkDead calls: got %d, want 1", len(dead))
	}
	if dead[0].Attempts != 5 {
		t.Errorf("dead at attempts = %d, want 5", dead[0].Attempts)
	}
	if len(store.RescheduleCalls()) != 0 {
		t.Error("exhausted record must not be rescheduled")
	}

	// A dead record is never claimed again, so a further cycle delivers
	// nothing.
	if _, err := p.ProcessDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.DeliverCalls()) != 1 {
		t.Errorf("deliveries = %d, want exactly 1 (no sixth attempt)", len(notifier.DeliverCalls()))
	}
}

func TestProcessDue_MissingEventDeadLetters(t *testing.T) {
	t.Parallel()

	rec := claimedRecord(0)
	store := &outboxStoreMock{
		ClaimDueFunc: singleClaim(rec),
		MarkDeadFunc: func(ctx context.Context, id string, attempts int) error { return nil },
	}
	events := &eventStoreMock{
		GetByIDFunc: func(ctx context.Context, orgID, eventID uuid.UUID) (domain.DomainEvent, error) {
			return domain.DomainEvent{}, domain.ErrNotFound
		},
	}
	notifier := &notifierMock{
		DeliverFunc: func(ctx context.Context, ev *domain.DomainEvent, r domain.OutboxRecord) error { return nil },
	}
	p := NewProcessor(slog.Default(), store, events, notifier, 10, time.Second)

	if _, err := p.ProcessDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.DeliverCalls()) != 0 {
		t.Error("must not deliver a record whose event is missing")
	}
	if len(store.MarkDeadCalls()) != 1 {
		t.Errorf("MarkDead calls: got %d, want 1", len(store.MarkDeadCalls()))
	}
}

func TestProcessDue_ClaimErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("query timeout")
	store := &outboxStoreMock{
		ClaimDueFunc: func(ctx context.Context, now time.Time, limit int) ([]domain.OutboxRecord, error) {
			return nil, boom
		},
	}
	p := NewProcessor(slog.Default(), store, &eventStoreMock{}, &notifierMock{}, 10, time.Second)

	if _, err := p.ProcessDue(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected claim error, got %v", err)
	}
}

func TestProcessDue_EventLookupScopedToRecordOrg(t *testing.T) {
	t.Parallel()

	rec := claimedRecord(0)
	store := &outboxStoreMock{
		ClaimDueFunc: singleClaim(rec),
		MarkDoneFunc: func(ctx context.Context, id string, attempts int) error { return nil },
	}
	var gotOrgID, gotEventID uuid.UUID
	events := &eventStoreMock{
		GetByIDFunc: func(ctx context.Context, orgID, eventID uuid.UUID) (domain.DomainEvent, error) {
			gotOrgID, gotEventID = orgID, eventID
			return domain.DomainEvent{ID: eventID, OrganizationID: orgID}, nil
		},
	}
	notifier := &notifierMock{
		DeliverFunc: func(ctx context.Context, ev *domain.DomainEvent, r domain.OutboxRecord) error { return nil },
	}
	p := NewProcessor(slog.Default(), store, events, notifier, 10, time.Second)

	if _, err := p.ProcessDue(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOrgID != rec.OrganizationID {
		t.Errorf("event fetched with org %s, want the record's org %s", gotOrgID, rec.OrganizationID)
	}
	if gotEventID != rec.EventID {
		t.Errorf("event fetched with id %s, want %s", gotEventID, rec.EventID)
	}
}

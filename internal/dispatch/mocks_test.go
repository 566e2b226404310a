package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

var _ outboxStore = &outboxStoreMock{}

type outboxStoreMock struct {
	ClaimDueFunc   func(ctx context.Context, now time.Time, limit int) ([]domain.OutboxRecord, error)
	MarkDoneFunc   func(ctx context.Context, id string, attempts int) error
	RescheduleFunc func(ctx context.Context, id string, attempts int, nextAttemptAt time.Time) error
	MarkDeadFunc   func(ctx context.Context, id string, attempts int) error

	mu              sync.Mutex
	markDoneCalls   []struct {
		ID       string
		Attempts int
	}
	rescheduleCalls []struct {
		ID            string
		Attempts      int
		NextAttemptAt time.Time
	}
	markDeadCalls []struct {
		ID       string
		Attempts int
	}
}

func (m *outboxStoreMock) ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxRecord, error) {
	return m.ClaimDueFunc(ctx, now, limit)
}

func (m *outboxStoreMock) MarkDone(ctx context.Context, id string, attempts int) error {
	m.mu.Lock()
	m.markDoneCalls = append(m.markDoneCalls, struct {
		ID       string
		Attempts int
	}{id, attempts})
	m.mu.Unlock()
	return m.MarkDoneFunc(ctx, id, attempts)
}

func (m *outboxStoreMock) Reschedule(ctx context.Context, id string, attempts int, nextAttemptAt time.Time) error {
	m.mu.Lock()
	m.rescheduleCalls = append(m.rescheduleCalls, struct {
		ID            string
		Attempts      int
		NextAttemptAt time.Time
	}{id, attempts, nextAttemptAt})
	m.mu.Unlock()
	return m.RescheduleFunc(ctx, id, attempts, nextAttemptAt)
}

func (m *outboxStoreMock) MarkDead(ctx context.Context, id string, attempts int) error {
	m.mu.Lock()
	m.markDeadCalls = append(m.markDeadCalls, struct {
		ID       string
		Attempts int
	}{id, attempts})
	m.mu.Unlock()
	return m.MarkDeadFunc(ctx, id, attempts)
}

func (m *outboxStoreMock) MarkDoneCalls() []struct {
	ID       string
	Attempts int
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markDoneCalls
}

func (m *outboxStoreMock) RescheduleCalls() []struct {
	ID            string
	Attempts      int
	NextAttemptAt time.Time
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rescheduleCalls
}

func (m *outboxStoreMock) MarkDeadCalls() []struct {
	ID       string
	Attempts int
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markDeadCalls
}

var _ eventStore = &eventStoreMock{}

type eventStoreMock struct {
	GetByIDFunc func(ctx context.Context, orgID, eventID uuid.UUID) (domain.DomainEvent, error)
}

func (m *eventStoreMock) GetByID(ctx context.Context, orgID, eventID uuid.UUID) (domain.DomainEvent, error) {
	return m.GetByIDFunc(ctx, orgID, eventID)
}

var _ Notifier = &notifierMock{}

type notifierMock struct {
	DeliverFunc func(ctx context.Context, ev *domain.DomainEvent, rec domain.OutboxRecord) error

	mu           sync.Mutex
	deliverCalls []domain.OutboxRecord
}

func (m *notifierMock) Deliver(ctx context.Context, ev *domain.DomainEvent, rec domain.OutboxRecord) error {
	m.mu.Lock()
	m.deliverCalls = append(m.deliverCalls, rec)
	m.mu.Unlock()
	return m.DeliverFunc(ctx, ev, rec)
}

func (m *notifierMock) DeliverCalls() []domain.OutboxRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deliverCalls
}

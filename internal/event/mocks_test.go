package event

import (
	"context"
	"sync"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	CreateFunc func(ctx context.Context, ev domain.DomainEvent) error

	mu          sync.Mutex
	createCalls []domain.DomainEvent
}

func (m *eventRepoMock) Create(ctx context.Context, ev domain.DomainEvent) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, ev)
	m.mu.Unlock()
	return m.CreateFunc(ctx, ev)
}

func (m *eventRepoMock) CreateCalls() []domain.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

var _ outboxRepo = &outboxRepoMock{}

type outboxRepoMock struct {
	CreateFunc func(ctx context.Context, rec domain.OutboxRecord) error

	mu          sync.Mutex
	createCalls []domain.OutboxRecord
}

func (m *outboxRepoMock) Create(ctx context.Context, rec domain.OutboxRecord) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, rec)
	m.mu.Unlock()
	return m.CreateFunc(ctx, rec)
}

func (m *outboxRepoMock) CreateCalls() []domain.OutboxRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTxFunc(ctx, fn)
}

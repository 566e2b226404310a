package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

var _ clientRepo = &clientRepoMock{}

type clientRepoMock struct {
	CreateFunc             func(ctx context.Context, c domain.Client) error
	GetByIDFunc            func(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error)
	ListFunc               func(ctx context.Context, orgID uuid.UUID, filter domain.ClientFilter) ([]domain.Client, error)
	UpdateFunc             func(ctx context.Context, c domain.Client) error
	SoftDeleteFunc         func(ctx context.Context, c domain.Client) error
	CountActiveMattersFunc func(ctx context.Context, orgID, clientID uuid.UUID) (int, error)

	mu          sync.Mutex
	createCalls []domain.Client
	deleteCalls []domain.Client
}

func (m *clientRepoMock) Create(ctx context.Context, c domain.Client) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, c)
	m.mu.Unlock()
	return m.CreateFunc(ctx, c)
}

func (m *clientRepoMock) GetByID(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error) {
	return m.GetByIDFunc(ctx, orgID, clientID)
}

func (m *clientRepoMock) List(ctx context.Context, orgID uuid.UUID, filter domain.ClientFilter) ([]domain.Client, error) {
	return m.ListFunc(ctx, orgID, filter)
}

func (m *clientRepoMock) Update(ctx context.Context, c domain.Client) error {
	return m.UpdateFunc(ctx, c)
}

func (m *clientRepoMock) SoftDelete(ctx context.Context, c domain.Client) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, c)
	m.mu.Unlock()
	return m.SoftDeleteFunc(ctx, c)
}

func (m *clientRepoMock) CountActiveMatters(ctx context.Context, orgID, clientID uuid.UUID) (int, error) {
	return m.CountActiveMattersFunc(ctx, orgID, clientID)
}

func (m *clientRepoMock) CreateCalls() []domain.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *clientRepoMock) SoftDeleteCalls() []domain.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteCalls
}

var _ entitlementEvaluator = &evaluatorMock{}

type evaluatorMock struct {
	EvaluateFunc func(ctx context.Context, callerID, orgID uuid.UUID, req entitlement.Requirement) (entitlement.Decision, error)
}

func (m *evaluatorMock) Evaluate(ctx context.Context, callerID, orgID uuid.UUID, req entitlement.Requirement) (entitlement.Decision, error) {
	return m.EvaluateFunc(ctx, callerID, orgID, req)
}

func allowAll() *evaluatorMock {
	return &evaluatorMock{
		EvaluateFunc: func(_ context.Context, _, _ uuid.UUID, _ entitlement.Requirement) (entitlement.Decision, error) {
			return entitlement.Decision{Allowed: true, Role: domain.RoleAdmin}, nil
		},
	}
}

var _ eventEmitter = &emitterMock{}

type emitterMock struct {
	mu    sync.Mutex
	calls []event.Params
}

func (m *emitterMock) EmitBestEffort(_ context.Context, p event.Params) {
	m.mu.Lock()
	m.calls = append(m.calls, p)
	m.mu.Unlock()
}

func (m *emitterMock) Calls() []event.Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ auditRecorder = &auditMock{}

type auditMock struct {
	mu    sync.Mutex
	calls []domain.AuditAction
}

func (m *auditMock) Record(_ context.Context, _, _ uuid.UUID, action domain.AuditAction, _ domain.EntityType, _ *uuid.UUID, _ map[string]any) {
	m.mu.Lock()
	m.calls = append(m.calls, action)
	m.mu.Unlock()
}

func (m *auditMock) Calls() []domain.AuditAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

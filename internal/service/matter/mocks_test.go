package matter

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

var _ matterRepo = &matterRepoMock{}

type matterRepoMock struct {
	CreateFunc         func(ctx context.Context, m domain.Matter) error
	GetByIDFunc        func(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error)
	ListByClientFunc   func(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Matter, error)
	ListByAssigneeFunc func(ctx context.Context, orgID, assigneeID uuid.UUID, limit, offset int) ([]domain.Matter, error)
	UpdateStatusFunc   func(ctx context.Context, m domain.Matter) error
	UpdateAssigneeFunc func(ctx context.Context, m domain.Matter) error

	mu                sync.Mutex
	createCalls       []domain.Matter
	statusCalls       []domain.Matter
	assigneeCalls     []domain.Matter
}

func (m *matterRepoMock) Create(ctx context.Context, mt domain.Matter) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, mt)
	m.mu.Unlock()
	return m.CreateFunc(ctx, mt)
}

func (m *matterRepoMock) GetByID(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error) {
	return m.GetByIDFunc(ctx, orgID, matterID)
}

func (m *matterRepoMock) ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Matter, error) {
	return m.ListByClientFunc(ctx, orgID, clientID, limit, offset)
}

func (m *matterRepoMock) ListByAssignee(ctx context.Context, orgID, assigneeID uuid.UUID, limit, offset int) ([]domain.Matter, error) {
	return m.ListByAssigneeFunc(ctx, orgID, assigneeID, limit, offset)
}

func (m *matterRepoMock) UpdateStatus(ctx context.Context, mt domain.Matter) error {
	m.mu.Lock()
	m.statusCalls = append(m.statusCalls, mt)
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, mt)
}

func (m *matterRepoMock) UpdateAssignee(ctx context.Context, mt domain.Matter) error {
	m.mu.Lock()
	m.assigneeCalls = append(m.assigneeCalls, mt)
	m.mu.Unlock()
	return m.UpdateAssigneeFunc(ctx, mt)
}

func (m *matterRepoMock) UpdateStatusCalls() []domain.Matter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusCalls
}

func (m *matterRepoMock) UpdateAssigneeCalls() []domain.Matter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assigneeCalls
}

var _ clientRepo = &clientRepoMock{}

type clientRepoMock struct {
	GetByIDFunc func(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error)
}

func (m *clientRepoMock) GetByID(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error) {
	return m.GetByIDFunc(ctx, orgID, clientID)
}

func existingClient() *clientRepoMock {
	return &clientRepoMock{
		GetByIDFunc: func(_ context.Context, orgID, clientID uuid.UUID) (domain.Client, error) {
			return domain.Client{ID: clientID, OrganizationID: orgID, Name: "Acme"}, nil
		},
	}
}

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	GetFunc func(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error)
}

func (m *membershipRepoMock) Get(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error) {
	return m.GetFunc(ctx, orgID, userID)
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
			return entitlement.Decision{Allowed: true, Role: domain.RoleLawyer}, nil
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

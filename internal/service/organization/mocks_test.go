package organization

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

var _ orgRepo = &orgRepoMock{}

type orgRepoMock struct {
	CreateFunc         func(ctx context.Context, org domain.Organization) error
	GetByIDFunc        func(ctx context.Context, orgID uuid.UUID) (domain.Organization, error)
	UpdateSettingsFunc func(ctx context.Context, org domain.Organization) error

	mu          sync.Mutex
	createCalls []domain.Organization
	updateCalls []domain.Organization
}

func (m *orgRepoMock) Create(ctx context.Context, org domain.Organization) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, org)
	m.mu.Unlock()
	return m.CreateFunc(ctx, org)
}

func (m *orgRepoMock) GetByID(ctx context.Context, orgID uuid.UUID) (domain.Organization, error) {
	return m.GetByIDFunc(ctx, orgID)
}

func (m *orgRepoMock) UpdateSettings(ctx context.Context, org domain.Organization) error {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, org)
	m.mu.Unlock()
	return m.UpdateSettingsFunc(ctx, org)
}

func (m *orgRepoMock) CreateCalls() []domain.Organization {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *orgRepoMock) UpdateSettingsCalls() []domain.Organization {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	CreateFunc             func(ctx context.Context, mb domain.Membership) error
	GetFunc                func(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error)
	ListByOrganizationFunc func(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error)
	CountByRoleFunc        func(ctx context.Context, orgID uuid.UUID, role domain.Role) (int, error)
	DeleteFunc             func(ctx context.Context, orgID, userID uuid.UUID) error

	mu          sync.Mutex
	createCalls []domain.Membership
	deleteCalls []uuid.UUID
}

func (m *membershipRepoMock) Create(ctx context.Context, mb domain.Membership) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, mb)
	m.mu.Unlock()
	return m.CreateFunc(ctx, mb)
}

func (m *membershipRepoMock) Get(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error) {
	return m.GetFunc(ctx, orgID, userID)
}

func (m *membershipRepoMock) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error) {
	return m.ListByOrganizationFunc(ctx, orgID)
}

func (m *membershipRepoMock) CountByRole(ctx context.Context, orgID uuid.UUID, role domain.Role) (int, error) {
	return m.CountByRoleFunc(ctx, orgID, role)
}

func (m *membershipRepoMock) Delete(ctx context.Context, orgID, userID uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, userID)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, orgID, userID)
}

func (m *membershipRepoMock) CreateCalls() []domain.Membership {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *membershipRepoMock) DeleteCalls() []uuid.UUID {
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
			return entitlement.Decision{Allowed: true, Role: domain.RoleOwner}, nil
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

type auditCall struct {
	Action     domain.AuditAction
	EntityType domain.EntityType
	EntityID   *uuid.UUID
}

type auditMock struct {
	mu    sync.Mutex
	calls []auditCall
}

func (m *auditMock) Record(_ context.Context, _, _ uuid.UUID, action domain.AuditAction, entityType domain.EntityType, entityID *uuid.UUID, _ map[string]any) {
	m.mu.Lock()
	m.calls = append(m.calls, auditCall{Action: action, EntityType: entityType, EntityID: entityID})
	m.mu.Unlock()
}

func (m *auditMock) Calls() []auditCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

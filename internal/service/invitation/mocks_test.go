package invitation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

var _ invitationRepo = &invitationRepoMock{}

type transitionCall struct {
	ID   uuid.UUID
	From domain.InvitationStatus
	To   domain.InvitationStatus
}

type invitationRepoMock struct {
	CreateFunc             func(ctx context.Context, inv domain.Invitation) error
	GetByCodeFunc          func(ctx context.Context, code string) (domain.Invitation, error)
	GetByIDFunc            func(ctx context.Context, orgID, invitationID uuid.UUID) (domain.Invitation, error)
	ListByOrganizationFunc func(ctx context.Context, orgID uuid.UUID) ([]domain.Invitation, error)
	TransitionStatusFunc   func(ctx context.Context, id uuid.UUID, from, to domain.InvitationStatus, updatedAt time.Time) error

	mu              sync.Mutex
	createCalls     []domain.Invitation
	transitionCalls []transitionCall
}

func (m *invitationRepoMock) Create(ctx context.Context, inv domain.Invitation) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, inv)
	m.mu.Unlock()
	return m.CreateFunc(ctx, inv)
}

func (m *invitationRepoMock) GetByCode(ctx context.Context, code string) (domain.Invitation, error) {
	return m.GetByCodeFunc(ctx, code)
}

func (m *invitationRepoMock) GetByID(ctx context.Context, orgID, invitationID uuid.UUID) (domain.Invitation, error) {
	return m.GetByIDFunc(ctx, orgID, invitationID)
}

func (m *invitationRepoMock) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Invitation, error) {
	return m.ListByOrganizationFunc(ctx, orgID)
}

func (m *invitationRepoMock) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.InvitationStatus, updatedAt time.Time) error {
	m.mu.Lock()
	m.transitionCalls = append(m.transitionCalls, transitionCall{ID: id, From: from, To: to})
	m.mu.Unlock()
	return m.TransitionStatusFunc(ctx, id, from, to, updatedAt)
}

func (m *invitationRepoMock) CreateCalls() []domain.Invitation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *invitationRepoMock) TransitionCalls() []transitionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitionCalls
}

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	CreateFunc func(ctx context.Context, mb domain.Membership) error

	mu          sync.Mutex
	createCalls []domain.Membership
}

func (m *membershipRepoMock) Create(ctx context.Context, mb domain.Membership) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, mb)
	m.mu.Unlock()
	return m.CreateFunc(ctx, mb)
}

func (m *membershipRepoMock) CreateCalls() []domain.Membership {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
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

package invoice

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

var _ invoiceRepo = &invoiceRepoMock{}

type markBilledCall struct {
	EntryIDs  []uuid.UUID
	InvoiceID uuid.UUID
}

type invoiceRepoMock struct {
	CreateFunc              func(ctx context.Context, inv domain.Invoice) error
	GetByIDFunc             func(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error)
	GetByIDForUpdateFunc    func(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error)
	ListByClientFunc        func(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Invoice, error)
	UpdatePaymentFunc       func(ctx context.Context, inv domain.Invoice) error
	UpdateStatusFunc        func(ctx context.Context, inv domain.Invoice) error
	CreateLineItemsFunc     func(ctx context.Context, items []domain.InvoiceLineItem) error
	ListLineItemsFunc       func(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceLineItem, error)
	CreateTimeEntryFunc     func(ctx context.Context, te domain.TimeEntry) error
	LockUnbilledEntriesFunc func(ctx context.Context, orgID, matterID uuid.UUID) ([]domain.TimeEntry, error)
	MarkEntriesBilledFunc   func(ctx context.Context, entryIDs []uuid.UUID, invoiceID uuid.UUID) error

	mu                 sync.Mutex
	createCalls        []domain.Invoice
	lineItemCalls      [][]domain.InvoiceLineItem
	timeEntryCalls     []domain.TimeEntry
	markBilledCalls    []markBilledCall
	updatePaymentCalls []domain.Invoice
	updateStatusCalls  []domain.Invoice
}

func (m *invoiceRepoMock) Create(ctx context.Context, inv domain.Invoice) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, inv)
	m.mu.Unlock()
	return m.CreateFunc(ctx, inv)
}

func (m *invoiceRepoMock) GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error) {
	return m.GetByIDFunc(ctx, orgID, invoiceID)
}

func (m *invoiceRepoMock) GetByIDForUpdate(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error) {
	return m.GetByIDForUpdateFunc(ctx, orgID, invoiceID)
}

func (m *invoiceRepoMock) ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Invoice, error) {
	return m.ListByClientFunc(ctx, orgID, clientID, limit, offset)
}

func (m *invoiceRepoMock) UpdatePayment(ctx context.Context, inv domain.Invoice) error {
	m.mu.Lock()
	m.updatePaymentCalls = append(m.updatePaymentCalls, inv)
	m.mu.Unlock()
	return m.UpdatePaymentFunc(ctx, inv)
}

func (m *invoiceRepoMock) UpdateStatus(ctx context.Context, inv domain.Invoice) error {
	m.mu.Lock()
	m.updateStatusCalls = append(m.updateStatusCalls, inv)
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, inv)
}

func (m *invoiceRepoMock) CreateLineItems(ctx context.Context, items []domain.InvoiceLineItem) error {
	m.mu.Lock()
	m.lineItemCalls = append(m.lineItemCalls, items)
	m.mu.Unlock()
	return m.CreateLineItemsFunc(ctx, items)
}

func (m *invoiceRepoMock) ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceLineItem, error) {
	return m.ListLineItemsFunc(ctx, invoiceID)
}

func (m *invoiceRepoMock) CreateTimeEntry(ctx context.Context, te domain.TimeEntry) error {
	m.mu.Lock()
	m.timeEntryCalls = append(m.timeEntryCalls, te)
	m.mu.Unlock()
	return m.CreateTimeEntryFunc(ctx, te)
}

func (m *invoiceRepoMock) LockUnbilledEntries(ctx context.Context, orgID, matterID uuid.UUID) ([]domain.TimeEntry, error) {
	return m.LockUnbilledEntriesFunc(ctx, orgID, matterID)
}

func (m *invoiceRepoMock) MarkEntriesBilled(ctx context.Context, entryIDs []uuid.UUID, invoiceID uuid.UUID) error {
	m.mu.Lock()
	m.markBilledCalls = append(m.markBilledCalls, markBilledCall{EntryIDs: entryIDs, InvoiceID: invoiceID})
	m.mu.Unlock()
	return m.MarkEntriesBilledFunc(ctx, entryIDs, invoiceID)
}

func (m *invoiceRepoMock) CreateCalls() []domain.Invoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *invoiceRepoMock) LineItemCalls() [][]domain.InvoiceLineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lineItemCalls
}

func (m *invoiceRepoMock) TimeEntryCalls() []domain.TimeEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeEntryCalls
}

func (m *invoiceRepoMock) MarkBilledCalls() []markBilledCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markBilledCalls
}

func (m *invoiceRepoMock) UpdatePaymentCalls() []domain.Invoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updatePaymentCalls
}

func (m *invoiceRepoMock) UpdateStatusCalls() []domain.Invoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateStatusCalls
}

var _ matterRepo = &matterRepoMock{}

type matterRepoMock struct {
	GetByIDFunc func(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error)
}

func (m *matterRepoMock) GetByID(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error) {
	return m.GetByIDFunc(ctx, orgID, matterID)
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
	calls int
}

func (m *auditMock) Record(_ context.Context, _, _ uuid.UUID, _ domain.AuditAction, _ domain.EntityType, _ *uuid.UUID, _ map[string]any) {
	m.mu.Lock()
	m.calls++
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

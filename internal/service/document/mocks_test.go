package document

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	CreateFunc           func(ctx context.Context, d domain.Document) error
	GetByIDFunc          func(ctx context.Context, orgID, documentID uuid.UUID) (domain.Document, error)
	ListByMatterFunc     func(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Document, error)
	UpdateExtractionFunc func(ctx context.Context, d domain.Document) error

	mu              sync.Mutex
	createCalls     []domain.Document
	extractionCalls []domain.Document
}

func (m *documentRepoMock) Create(ctx context.Context, d domain.Document) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, d)
	m.mu.Unlock()
	return m.CreateFunc(ctx, d)
}

func (m *documentRepoMock) GetByID(ctx context.Context, orgID, documentID uuid.UUID) (domain.Document, error) {
	return m.GetByIDFunc(ctx, orgID, documentID)
}

func (m *documentRepoMock) ListByMatter(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Document, error) {
	return m.ListByMatterFunc(ctx, orgID, matterID, limit, offset)
}

func (m *documentRepoMock) UpdateExtraction(ctx context.Context, d domain.Document) error {
	m.mu.Lock()
	m.extractionCalls = append(m.extractionCalls, d)
	m.mu.Unlock()
	return m.UpdateExtractionFunc(ctx, d)
}

func (m *documentRepoMock) CreateCalls() []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *documentRepoMock) ExtractionCalls() []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.extractionCalls
}

var _ matterRepo = &matterRepoMock{}

type matterRepoMock struct {
	GetByIDFunc func(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error)
}

func (m *matterRepoMock) GetByID(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error) {
	return m.GetByIDFunc(ctx, orgID, matterID)
}

var _ objectStore = &storeMock{}

type storeMock struct {
	PresignUploadFunc   func(ctx context.Context, key, contentType string) (string, error)
	PresignDownloadFunc func(ctx context.Context, key string) (string, error)

	mu           sync.Mutex
	uploadKeys   []string
	downloadKeys []string
}

func (m *storeMock) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	m.mu.Lock()
	m.uploadKeys = append(m.uploadKeys, key)
	m.mu.Unlock()
	if m.PresignUploadFunc != nil {
		return m.PresignUploadFunc(ctx, key, contentType)
	}
	return fmt.Sprintf("https://bucket.example.com/%s?put", key), nil
}

func (m *storeMock) PresignDownload(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	m.downloadKeys = append(m.downloadKeys, key)
	m.mu.Unlock()
	if m.PresignDownloadFunc != nil {
		return m.PresignDownloadFunc(ctx, key)
	}
	return fmt.Sprintf("https://bucket.example.com/%s?get", key), nil
}

func (m *storeMock) TTL() time.Duration { return 15 * time.Minute }

func (m *storeMock) UploadKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadKeys
}

func (m *storeMock) DownloadKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.downloadKeys
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

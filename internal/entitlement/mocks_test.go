package entitlement

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	GetFunc func(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error)

	mu       sync.Mutex
	getCalls []struct{ OrgID, UserID uuid.UUID }
}

func (m *membershipRepoMock) Get(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error) {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, struct{ OrgID, UserID uuid.UUID }{orgID, userID})
	m.mu.Unlock()
	return m.GetFunc(ctx, orgID, userID)
}

func (m *membershipRepoMock) GetCalls() []struct{ OrgID, UserID uuid.UUID } {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

var _ orgRepo = &orgRepoMock{}

type orgRepoMock struct {
	GetByIDFunc func(ctx context.Context, orgID uuid.UUID) (domain.Organization, error)

	mu           sync.Mutex
	getByIDCalls []uuid.UUID
}

func (m *orgRepoMock) GetByID(ctx context.Context, orgID uuid.UUID) (domain.Organization, error) {
	m.mu.Lock()
	m.getByIDCalls = append(m.getByIDCalls, orgID)
	m.mu.Unlock()
	return m.GetByIDFunc(ctx, orgID)
}

func (m *orgRepoMock) GetByIDCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getByIDCalls
}

// Package invoice implements billing: time tracking, invoice generation
// and payment recording.
package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

type invoiceRepo interface {
	Create(ctx context.Context, inv domain.Invoice) error
	GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error)
	ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Invoice, error)
	UpdatePayment(ctx context.Context, inv domain.Invoice) error
	UpdateStatus(ctx context.Context, inv domain.Invoice) error
	CreateLineItems(ctx context.Context, items []domain.InvoiceLineItem) error
	ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceLineItem, error)
	CreateTimeEntry(ctx context.Context, te domain.TimeEntry) error
	LockUnbilledEntries(ctx context.Context, orgID, matterID uuid.UUID) ([]domain.TimeEntry, error)
	MarkEntriesBilled(ctx context.Context, entryIDs []uuid.UUID, invoiceID uuid.UUID) error
}

type matterRepo interface {
	GetByID(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error)
}

type entitlementEvaluator interface {
	Evaluate(ctx context.Context, callerID, orgID uuid.UUID, req entitlement.Requirement) (entitlement.Decision, error)
}

type eventEmitter interface {
	EmitBestEffort(ctx context.Context, p event.Params)
}

type auditRecorder interface {
	Record(ctx context.Context, orgID, actorID uuid.UUID, action domain.AuditAction, entityType domain.EntityType, entityID *uuid.UUID, metadata map[string]any)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements invoicing business logic.
type Service struct {
	log          *slog.Logger
	invoices     invoiceRepo
	matters      matterRepo
	entitlements entitlementEvaluator
	emitter      eventEmitter
	audit        auditRecorder
	tx           txManager
	now          func() time.Time
}

// NewService creates a new invoice service.
func NewService(
	logger *slog.Logger,
	invoices invoiceRepo,
	matters matterRepo,
	entitlements entitlementEvaluator,
	emitter eventEmitter,
	audit auditRecorder,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "invoice"),
		invoices:     invoices,
		matters:      matters,
		entitlements: entitlements,
		emitter:      emitter,
		audit:        audit,
		tx:           tx,
		now:          time.Now,
	}
}

func (s *Service) authorize(ctx context.Context, orgID uuid.UUID, req entitlement.Requirement) (uuid.UUID, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}

	decision, err := s.entitlements.Evaluate(ctx, callerID, orgID, req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("evaluate entitlement: %w", err)
	}
	if !decision.Allowed {
		return uuid.Nil, entitlement.DecisionError(decision)
	}

	return callerID, nil
}

// invoiceNumber derives a short human-readable number from the invoice id.
func invoiceNumber(id uuid.UUID, year int) string {
	return fmt.Sprintf("INV-%d-%X", year, id[:4])
}

package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// InvoiceDetail is an invoice with its line items.
type InvoiceDetail struct {
	Invoice   domain.Invoice
	LineItems []domain.InvoiceLineItem
}

// Get returns an invoice with its line items.
func (s *Service) Get(ctx context.Context, orgID, invoiceID uuid.UUID) (InvoiceDetail, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature: entitlement.FeatureInvoicing,
	}); err != nil {
		return InvoiceDetail{}, err
	}

	inv, err := s.invoices.GetByID(ctx, orgID, invoiceID)
	if err != nil {
		return InvoiceDetail{}, fmt.Errorf("get invoice: %w", err)
	}

	items, err := s.invoices.ListLineItems(ctx, inv.ID)
	if err != nil {
		return InvoiceDetail{}, fmt.Errorf("list line items: %w", err)
	}

	return InvoiceDetail{Invoice: inv, LineItems: items}, nil
}

// ListByClient returns the client's invoices, newest first.
func (s *Service) ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Invoice, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature: entitlement.FeatureInvoicing,
	}); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	invs, err := s.invoices.ListByClient(ctx, orgID, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	return invs, nil
}

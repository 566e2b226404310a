package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

// Create generates a draft invoice from every unbilled time entry of the
// matter. The entries are locked, converted to line items and marked billed
// in one transaction, so two concurrent creates cannot bill the same work
// twice.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, input CreateInput) (domain.Invoice, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature:    entitlement.FeatureInvoicing,
		Permission: entitlement.PermInvoiceManage,
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Invoice{}, err
	}

	now := s.now().UTC()
	if !input.DueDate.After(now) {
		return domain.Invoice{}, fmt.Errorf("due date %s is not in the future: %w",
			input.DueDate.Format("2006-01-02"), domain.ErrInvalidDueDate)
	}

	m, err := s.matters.GetByID(ctx, orgID, input.MatterID)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("get matter: %w", err)
	}

	var inv domain.Invoice
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		entries, err := s.invoices.LockUnbilledEntries(txCtx, orgID, m.ID)
		if err != nil {
			return fmt.Errorf("lock unbilled entries: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("matter has no unbilled time: %w", domain.ErrValidation)
		}

		invoiceID := uuid.New()
		items := make([]domain.InvoiceLineItem, 0, len(entries))
		entryIDs := make([]uuid.UUID, 0, len(entries))
		var totalCents int64
		for _, e := range entries {
			amount := e.AmountCents()
			totalCents += amount
			items = append(items, domain.InvoiceLineItem{
				ID:          uuid.New(),
				InvoiceID:   invoiceID,
				TimeEntryID: e.ID,
				Description: e.Description,
				Minutes:     e.Minutes,
				AmountCents: amount,
			})
			entryIDs = append(entryIDs, e.ID)
		}

		inv = domain.Invoice{
			ID:             invoiceID,
			OrganizationID: orgID,
			ClientID:       m.ClientID,
			Number:         invoiceNumber(invoiceID, now.Year()),
			Status:         domain.InvoiceStatusDraft,
			TotalCents:     totalCents,
			DueDate:        input.DueDate.UTC(),
			CreatedBy:      callerID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := s.invoices.Create(txCtx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		if err := s.invoices.CreateLineItems(txCtx, items); err != nil {
			return fmt.Errorf("create line items: %w", err)
		}
		if err := s.invoices.MarkEntriesBilled(txCtx, entryIDs, invoiceID); err != nil {
			return fmt.Errorf("mark entries billed: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionCreate, domain.EntityTypeInvoice, &inv.ID,
		map[string]any{"number": inv.Number, "total_cents": inv.TotalCents})

	return inv, nil
}

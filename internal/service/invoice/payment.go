package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

// Send issues a draft invoice. Only draft invoices can be sent.
func (s *Service) Send(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature:    entitlement.FeatureInvoicing,
		Permission: entitlement.PermInvoiceManage,
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	inv, err := s.invoices.GetByID(ctx, orgID, invoiceID)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Status != domain.InvoiceStatusDraft {
		return domain.Invoice{}, fmt.Errorf("%s -> %s: %w", inv.Status, domain.InvoiceStatusSent, domain.ErrInvalidTransition)
	}

	now := s.now().UTC()
	inv.Status = domain.InvoiceStatusSent
	inv.IssuedAt = &now
	inv.UpdatedAt = now

	if err := s.invoices.UpdateStatus(ctx, inv); err != nil {
		return domain.Invoice{}, fmt.Errorf("update invoice status: %w", err)
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionUpdate, domain.EntityTypeInvoice, &inv.ID,
		map[string]any{"status": inv.Status.String()})

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: orgID,
		EventType:      "invoice.sent",
		EntityType:     domain.EntityTypeInvoice,
		EntityID:       inv.ID,
		Actor:          domain.UserActor(callerID),
		Payload:        map[string]any{"number": inv.Number, "total_cents": inv.TotalCents},
	})

	return inv, nil
}

// RecordPayment applies a payment to a sent or partially paid invoice.
// The invoice row is locked for the duration of the transaction, so
// concurrent payments serialize and the paid total never exceeds the
// invoice total.
func (s *Service) RecordPayment(ctx context.Context, orgID uuid.UUID, input RecordPaymentInput) (domain.Invoice, error) {
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

	var (
		inv       domain.Invoice
		fullyPaid bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		inv, err = s.invoices.GetByIDForUpdate(txCtx, orgID, input.InvoiceID)
		if err != nil {
			return fmt.Errorf("get invoice for update: %w", err)
		}
		if !inv.Status.AcceptsPayment() {
			return fmt.Errorf("invoice is %s: %w", inv.Status, domain.ErrInvalidTransition)
		}

		status := inv.ApplyPayment(input.AmountCents)
		fullyPaid = status == domain.InvoiceStatusPaid
		inv.UpdatedAt = s.now().UTC()

		if err := s.invoices.UpdatePayment(txCtx, inv); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionUpdate, domain.EntityTypeInvoice, &inv.ID,
		map[string]any{"paid_cents": inv.PaidCents, "status": inv.Status.String()})

	if fullyPaid {
		s.emitter.EmitBestEffort(ctx, event.Params{
			OrganizationID: orgID,
			EventType:      "invoice.paid",
			EntityType:     domain.EntityTypeInvoice,
			EntityID:       inv.ID,
			Actor:          domain.UserActor(callerID),
			Payload:        map[string]any{"number": inv.Number, "total_cents": inv.TotalCents},
		})
	}

	return inv, nil
}

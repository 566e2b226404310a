package invoice

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// LogTimeInput describes billable work to record against a matter.
type LogTimeInput struct {
	MatterID    uuid.UUID
	Description string
	Minutes     int
	RateCents   int64
	WorkedAt    time.Time
}

// Validate checks the input and returns a validation error if invalid.
func (in LogTimeInput) Validate() error {
	var fieldErrors []domain.FieldError

	if in.MatterID == uuid.Nil {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "matter_id", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.Description) == "" {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "description", Message: "must not be empty"})
	}
	if in.Minutes <= 0 {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "minutes", Message: "must be positive"})
	}
	if in.RateCents < 0 {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "rate_cents", Message: "must not be negative"})
	}
	if in.WorkedAt.IsZero() {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "worked_at", Message: "must be set"})
	}

	if len(fieldErrors) > 0 {
		return domain.NewValidationErrors(fieldErrors)
	}

	return nil
}

// CreateInput describes an invoice to generate from a matter's unbilled time.
type CreateInput struct {
	MatterID uuid.UUID
	DueDate  time.Time
}

// Validate checks the input and returns a validation error if invalid.
func (in CreateInput) Validate() error {
	var fieldErrors []domain.FieldError

	if in.MatterID == uuid.Nil {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "matter_id", Message: "must not be empty"})
	}
	if in.DueDate.IsZero() {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "due_date", Message: "must be set"})
	}

	if len(fieldErrors) > 0 {
		return domain.NewValidationErrors(fieldErrors)
	}

	return nil
}

// RecordPaymentInput describes a payment against an invoice.
type RecordPaymentInput struct {
	InvoiceID   uuid.UUID
	AmountCents int64
}

// Validate checks the input and returns a validation error if invalid.
func (in RecordPaymentInput) Validate() error {
	var fieldErrors []domain.FieldError

	if in.InvoiceID == uuid.Nil {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "invoice_id", Message: "must not be empty"})
	}
	if in.AmountCents <= 0 {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "amount_cents", Message: "must be positive"})
	}

	if len(fieldErrors) > 0 {
		return domain.NewValidationErrors(fieldErrors)
	}

	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is billable work logged against a matter. Once billed it is
// bound to the invoice that consumed it and cannot be billed again.
type TimeEntry struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	MatterID       uuid.UUID
	UserID         uuid.UUID
	Description    string
	Minutes        int
	RateCents      int64
	Billed         bool
	InvoiceID      *uuid.UUID
	WorkedAt       time.Time
	CreatedAt      time.Time
}

// AmountCents returns the billable amount for the entry, rounded down.
func (t *TimeEntry) AmountCents() int64 {
	return t.RateCents * int64(t.Minutes) / 60
}

// Invoice bills a client for a set of time entries.
type Invoice struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ClientID       uuid.UUID
	Number         string
	Status         InvoiceStatus
	TotalCents     int64
	PaidCents      int64
	DueDate        time.Time
	IssuedAt       *time.Time
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyPayment adds amountCents to the paid total, clamping at the invoice
// total, and returns the resulting status. Used inside the payment
// transaction so concurrent payments cannot overshoot or double-pay.
func (i *Invoice) ApplyPayment(amountCents int64) InvoiceStatus {
	i.PaidCents += amountCents
	if i.PaidCents >= i.TotalCents {
		i.PaidCents = i.TotalCents
		i.Status = InvoiceStatusPaid
	} else {
		i.Status = InvoiceStatusPartial
	}
	return i.Status
}

// InvoiceLineItem is one billed time entry on an invoice.
type InvoiceLineItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	TimeEntryID uuid.UUID
	Description string
	Minutes     int
	AmountCents int64
}

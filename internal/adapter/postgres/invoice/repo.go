// Package invoice implements the Invoice, TimeEntry and line item
// repositories using PostgreSQL. Payment updates go through GetByIDForUpdate
// so concurrent payments serialize on the invoice row.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides invoice persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new invoice repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const invoiceColumns = `id, organization_id, client_id, number, status,
       total_cents, paid_cents, due_date, issued_at, created_by, created_at, updated_at`

const createInvoiceSQL = `
INSERT INTO invoices (id, organization_id, client_id, number, status,
                      total_cents, paid_cents, due_date, issued_at,
                      created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const getInvoiceByIDSQL = `
SELECT ` + invoiceColumns + `
FROM invoices
WHERE id = $1 AND organization_id = $2`

const getInvoiceForUpdateSQL = getInvoiceByIDSQL + `
FOR UPDATE`

const listInvoicesByClientSQL = `
SELECT ` + invoiceColumns + `
FROM invoices
WHERE organization_id = $1 AND client_id = $2
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

const updateInvoicePaymentSQL = `
UPDATE invoices SET status = $3, paid_cents = $4, updated_at = $5
WHERE id = $1 AND organization_id = $2`

const updateInvoiceStatusSQL = `
UPDATE invoices SET status = $3, issued_at = $4, updated_at = $5
WHERE id = $1 AND organization_id = $2`

const createLineItemSQL = `
INSERT INTO invoice_line_items (id, invoice_id, time_entry_id, description, minutes, amount_cents)
VALUES ($1, $2, $3, $4, $5, $6)`

const listLineItemsSQL = `
SELECT id, invoice_id, time_entry_id, description, minutes, amount_cents
FROM invoice_line_items
WHERE invoice_id = $1
ORDER BY description ASC`

const createTimeEntrySQL = `
INSERT INTO time_entries (id, organization_id, matter_id, user_id, description,
                          minutes, rate_cents, billed, invoice_id, worked_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// lockUnbilledEntriesSQL locks the candidate entries so a concurrent invoice
// for the same matter cannot bill them twice.
const lockUnbilledEntriesSQL = `
SELECT id, organization_id, matter_id, user_id, description,
       minutes, rate_cents, billed, invoice_id, worked_at, created_at
FROM time_entries
WHERE organization_id = $1 AND matter_id = $2 AND billed = FALSE
ORDER BY worked_at ASC
FOR UPDATE`

const markEntriesBilledSQL = `
UPDATE time_entries SET billed = TRUE, invoice_id = $2
WHERE id = ANY($1::uuid[]) AND billed = FALSE`

// Create inserts a new invoice. A duplicate number within the organization
// results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, inv domain.Invoice) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createInvoiceSQL,
		inv.ID, inv.OrganizationID, inv.ClientID, inv.Number, inv.Status,
		inv.TotalCents, inv.PaidCents, inv.DueDate, inv.IssuedAt,
		inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "invoice", inv.ID.String())
	}

	return nil
}

// GetByID returns an invoice scoped by organization.
func (r *Repo) GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error) {
	return r.get(ctx, getInvoiceByIDSQL, orgID, invoiceID)
}

// GetByIDForUpdate returns an invoice with its row locked for the duration
// of the surrounding transaction. Callers must be inside RunInTx.
func (r *Repo) GetByIDForUpdate(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error) {
	return r.get(ctx, getInvoiceForUpdateSQL, orgID, invoiceID)
}

func (r *Repo) get(ctx context.Context, sql string, orgID, invoiceID uuid.UUID) (domain.Invoice, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	inv, err := scanInvoice(querier.QueryRow(ctx, sql, invoiceID, orgID))
	if err != nil {
		return domain.Invoice{}, postgres.MapError(err, "invoice", invoiceID.String())
	}

	return inv, nil
}

// ListByClient returns a client's invoices, newest first.
func (r *Repo) ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Invoice, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listInvoicesByClientSQL, orgID, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	invs, err := scanInvoices(rows)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	return invs, nil
}

// UpdatePayment persists the paid total and resulting status.
func (r *Repo) UpdatePayment(ctx context.Context, inv domain.Invoice) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateInvoicePaymentSQL,
		inv.ID, inv.OrganizationID, inv.Status, inv.PaidCents, inv.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "invoice", inv.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", inv.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateStatus persists a status change, e.g. draft to sent or void.
func (r *Repo) UpdateStatus(ctx context.Context, inv domain.Invoice) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateInvoiceStatusSQL,
		inv.ID, inv.OrganizationID, inv.Status, inv.IssuedAt, inv.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "invoice", inv.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", inv.ID, domain.ErrNotFound)
	}

	return nil
}

// CreateLineItems inserts the line items of a freshly created invoice.
func (r *Repo) CreateLineItems(ctx context.Context, items []domain.InvoiceLineItem) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(createLineItemSQL,
			item.ID, item.InvoiceID, item.TimeEntryID, item.Description, item.Minutes, item.AmountCents,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "invoice line item", "")
		}
	}

	return nil
}

// ListLineItems returns an invoice's line items.
func (r *Repo) ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceLineItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listLineItemsSQL, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()

	var items []domain.InvoiceLineItem
	for rows.Next() {
		var item domain.InvoiceLineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.TimeEntryID,
			&item.Description, &item.Minutes, &item.AmountCents); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line items: %w", err)
	}

	if items == nil {
		items = []domain.InvoiceLineItem{}
	}

	return items, nil
}

// CreateTimeEntry inserts a billable time entry.
func (r *Repo) CreateTimeEntry(ctx context.Context, te domain.TimeEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createTimeEntrySQL,
		te.ID, te.OrganizationID, te.MatterID, te.UserID, te.Description,
		te.Minutes, te.RateCents, te.Billed, te.InvoiceID, te.WorkedAt, te.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "time entry", te.ID.String())
	}

	return nil
}

// LockUnbilledEntries returns a matter's unbilled entries with their rows
// locked. Callers must be inside RunInTx.
func (r *Repo) LockUnbilledEntries(ctx context.Context, orgID, matterID uuid.UUID) ([]domain.TimeEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, lockUnbilledEntriesSQL, orgID, matterID)
	if err != nil {
		return nil, fmt.Errorf("lock unbilled entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.TimeEntry
	for rows.Next() {
		var te domain.TimeEntry
		if err := rows.Scan(&te.ID, &te.OrganizationID, &te.MatterID, &te.UserID, &te.Description,
			&te.Minutes, &te.RateCents, &te.Billed, &te.InvoiceID, &te.WorkedAt, &te.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		entries = append(entries, te)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time entries: %w", err)
	}

	if entries == nil {
		entries = []domain.TimeEntry{}
	}

	return entries, nil
}

// MarkEntriesBilled binds time entries to the invoice that consumed them.
// Returns domain.ErrConflict if any entry was billed concurrently.
func (r *Repo) MarkEntriesBilled(ctx context.Context, entryIDs []uuid.UUID, invoiceID uuid.UUID) error {
	if len(entryIDs) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markEntriesBilledSQL, entryIDs, invoiceID)
	if err != nil {
		return postgres.MapError(err, "time entry", "")
	}

	if int(tag.RowsAffected()) != len(entryIDs) {
		return fmt.Errorf("time entries already billed: %w", domain.ErrConflict)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (domain.Invoice, error) {
	var (
		inv      domain.Invoice
		status   string
		issuedAt *time.Time
	)
	if err := row.Scan(&inv.ID, &inv.OrganizationID, &inv.ClientID, &inv.Number, &status,
		&inv.TotalCents, &inv.PaidCents, &inv.DueDate, &issuedAt,
		&inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return domain.Invoice{}, err
	}
	inv.Status = domain.InvoiceStatus(status)
	inv.IssuedAt = issuedAt
	return inv, nil
}

func scanInvoices(rows pgx.Rows) ([]domain.Invoice, error) {
	var invs []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if invs == nil {
		invs = []domain.Invoice{}
	}

	return invs, nil
}

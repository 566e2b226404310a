package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/service/invoice"
)

// invoiceService defines the minimal interface needed by InvoiceHandler.
type invoiceService interface {
	LogTime(ctx context.Context, orgID uuid.UUID, input invoice.LogTimeInput) (domain.TimeEntry, error)
	Create(ctx context.Context, orgID uuid.UUID, input invoice.CreateInput) (domain.Invoice, error)
	Send(ctx context.Context, orgID, invoiceID uuid.UUID) (domain.Invoice, error)
	RecordPayment(ctx context.Context, orgID uuid.UUID, input invoice.RecordPaymentInput) (domain.Invoice, error)
	Get(ctx context.Context, orgID, invoiceID uuid.UUID) (invoice.InvoiceDetail, error)
	ListByClient(ctx context.Context, orgID, clientID uuid.UUID, limit, offset int) ([]domain.Invoice, error)
}

// InvoiceHandler serves billing REST endpoints.
type InvoiceHandler struct {
	svc invoiceService
	log *slog.Logger
}

// NewInvoiceHandler creates an InvoiceHandler.
func NewInvoiceHandler(svc invoiceService, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, log: logger.With("handler", "invoice")}
}

type logTimeRequest struct {
	Description string    `json:"description"`
	Minutes     int       `json:"minutes"`
	RateCents   int64     `json:"rateCents"`
	WorkedAt    time.Time `json:"workedAt"`
}

type createInvoiceRequest struct {
	MatterID string    `json:"matterId"`
	DueDate  time.Time `json:"dueDate"`
}

type recordPaymentRequest struct {
	AmountCents int64 `json:"amountCents"`
}

type timeEntryResponse struct {
	ID          string    `json:"id"`
	MatterID    string    `json:"matterId"`
	Description string    `json:"description"`
	Minutes     int       `json:"minutes"`
	RateCents   int64     `json:"rateCents"`
	AmountCents int64     `json:"amountCents"`
	Billed      bool      `json:"billed"`
	WorkedAt    time.Time `json:"workedAt"`
}

type invoiceResponse struct {
	ID         string     `json:"id"`
	ClientID   string     `json:"clientId"`
	Number     string     `json:"number"`
	Status     string     `json:"status"`
	TotalCents int64      `json:"totalCents"`
	PaidCents  int64      `json:"paidCents"`
	DueDate    time.Time  `json:"dueDate"`
	IssuedAt   *time.Time `json:"issuedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type lineItemResponse struct {
	ID          string `json:"id"`
	TimeEntryID string `json:"timeEntryId"`
	Description string `json:"description"`
	Minutes     int    `json:"minutes"`
	AmountCents int64  `json:"amountCents"`
}

type invoiceDetailResponse struct {
	invoiceResponse
	LineItems []lineItemResponse `json:"lineItems"`
}

func toInvoiceResponse(inv domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:         inv.ID.String(),
		ClientID:   inv.ClientID.String(),
		Number:     inv.Number,
		Status:     inv.Status.String(),
		TotalCents: inv.TotalCents,
		PaidCents:  inv.PaidCents,
		DueDate:    inv.DueDate,
		IssuedAt:   inv.IssuedAt,
		CreatedAt:  inv.CreatedAt,
	}
}

// LogTime handles POST /matters/{matterID}/time-entries.
func (h *InvoiceHandler) LogTime(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	matterID, ok := pathUUID(w, r, "matterID")
	if !ok {
		return
	}

	var req logTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	entry, err := h.svc.LogTime(r.Context(), orgID, invoice.LogTimeInput{
		MatterID:    matterID,
		Description: req.Description,
		Minutes:     req.Minutes,
		RateCents:   req.RateCents,
		WorkedAt:    req.WorkedAt,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusCreated, timeEntryResponse{
		ID:          entry.ID.String(),
		MatterID:    entry.MatterID.String(),
		Description: entry.Description,
		Minutes:     entry.Minutes,
		RateCents:   entry.RateCents,
		AmountCents: entry.AmountCents(),
		Billed:      entry.Billed,
		WorkedAt:    entry.WorkedAt,
	})
}

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	matterID, err := uuid.Parse(req.MatterID)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid matterId")
		return
	}

	inv, err := h.svc.Create(r.Context(), orgID, invoice.CreateInput{
		MatterID: matterID,
		DueDate:  req.DueDate,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toInvoiceResponse(inv))
}

// Send handles POST /invoices/{invoiceID}/send.
func (h *InvoiceHandler) Send(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	invoiceID, ok := pathUUID(w, r, "invoiceID")
	if !ok {
		return
	}

	inv, err := h.svc.Send(r.Context(), orgID, invoiceID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toInvoiceResponse(inv))
}

// RecordPayment handles POST /invoices/{invoiceID}/payments.
func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	invoiceID, ok := pathUUID(w, r, "invoiceID")
	if !ok {
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	inv, err := h.svc.RecordPayment(r.Context(), orgID, invoice.RecordPaymentInput{
		InvoiceID:   invoiceID,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toInvoiceResponse(inv))
}

// Get handles GET /invoices/{invoiceID}.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	invoiceID, ok := pathUUID(w, r, "invoiceID")
	if !ok {
		return
	}

	detail, err := h.svc.Get(r.Context(), orgID, invoiceID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := invoiceDetailResponse{
		invoiceResponse: toInvoiceResponse(detail.Invoice),
		LineItems:       make([]lineItemResponse, 0, len(detail.LineItems)),
	}
	for _, item := range detail.LineItems {
		resp.LineItems = append(resp.LineItems, lineItemResponse{
			ID:          item.ID.String(),
			TimeEntryID: item.TimeEntryID.String(),
			Description: item.Description,
			Minutes:     item.Minutes,
			AmountCents: item.AmountCents,
		})
	}

	writeData(w, http.StatusOK, resp)
}

// ListByClient handles GET /clients/{clientID}/invoices.
func (h *InvoiceHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	clientID, ok := pathUUID(w, r, "clientID")
	if !ok {
		return
	}

	limit, offset := pagination(r)
	invs, err := h.svc.ListByClient(r.Context(), orgID, clientID, limit, offset)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]invoiceResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvoiceResponse(inv))
	}

	writeData(w, http.StatusOK, out)
}

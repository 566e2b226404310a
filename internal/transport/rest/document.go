package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/service/document"
)

// documentService defines the minimal interface needed by DocumentHandler.
type documentService interface {
	RequestUpload(ctx context.Context, orgID uuid.UUID, input document.RequestUploadInput) (document.UploadGrant, error)
	GetDownload(ctx context.Context, orgID, documentID uuid.UUID) (document.DownloadGrant, error)
	ListByMatter(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Document, error)
	RequestExtraction(ctx context.Context, orgID, documentID uuid.UUID) (domain.Document, error)
	CompleteExtraction(ctx context.Context, orgID, documentID uuid.UUID, text *string, failed bool) (domain.Document, error)
}

// DocumentHandler serves document REST endpoints.
type DocumentHandler struct {
	svc documentService
	log *slog.Logger
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(svc documentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: logger.With("handler", "document")}
}

type requestUploadRequest struct {
	MatterID    string `json:"matterId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type documentResponse struct {
	ID          string    `json:"id"`
	MatterID    string    `json:"matterId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Extraction  string    `json:"extraction"`
	CreatedAt   time.Time `json:"createdAt"`
}

type uploadGrantResponse struct {
	Document  documentResponse `json:"document"`
	UploadURL string           `json:"uploadUrl"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

type downloadGrantResponse struct {
	Document    documentResponse `json:"document"`
	DownloadURL string           `json:"downloadUrl"`
	ExpiresAt   time.Time        `json:"expiresAt"`
}

func toDocumentResponse(d domain.Document) documentResponse {
	return documentResponse{
		ID:          d.ID.String(),
		MatterID:    d.MatterID.String(),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		Extraction:  d.Extraction.String(),
		CreatedAt:   d.CreatedAt,
	}
}

// RequestUpload handles POST /documents.
func (h *DocumentHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	var req requestUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	matterID, err := uuid.Parse(req.MatterID)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid matterId")
		return
	}

	grant, err := h.svc.RequestUpload(r.Context(), orgID, document.RequestUploadInput{
		MatterID:    matterID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusCreated, uploadGrantResponse{
		Document:  toDocumentResponse(grant.Document),
		UploadURL: grant.UploadURL,
		ExpiresAt: grant.ExpiresAt,
	})
}

// GetDownload handles GET /documents/{documentID}/download.
func (h *DocumentHandler) GetDownload(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	documentID, ok := pathUUID(w, r, "documentID")
	if !ok {
		return
	}

	grant, err := h.svc.GetDownload(r.Context(), orgID, documentID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, downloadGrantResponse{
		Document:    toDocumentResponse(grant.Document),
		DownloadURL: grant.DownloadURL,
		ExpiresAt:   grant.ExpiresAt,
	})
}

// ListByMatter handles GET /matters/{matterID}/documents.
func (h *DocumentHandler) ListByMatter(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	matterID, ok := pathUUID(w, r, "matterID")
	if !ok {
		return
	}

	limit, offset := pagination(r)
	docs, err := h.svc.ListByMatter(r.Context(), orgID, matterID, limit, offset)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}

	writeData(w, http.StatusOK, out)
}

// RequestExtraction handles POST /documents/{documentID}/extract.
func (h *DocumentHandler) RequestExtraction(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	documentID, ok := pathUUID(w, r, "documentID")
	if !ok {
		return
	}

	doc, err := h.svc.RequestExtraction(r.Context(), orgID, documentID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusAccepted, toDocumentResponse(doc))
}

type extractionResultRequest struct {
	Text   *string `json:"text,omitempty"`
	Failed bool    `json:"failed"`
}

// CompleteExtraction handles POST /documents/{documentID}/extraction-result.
// The extraction worker reports its outcome here; a failed run records the
// failure without emitting an event.
func (h *DocumentHandler) CompleteExtraction(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	documentID, ok := pathUUID(w, r, "documentID")
	if !ok {
		return
	}

	var req extractionResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	doc, err := h.svc.CompleteExtraction(r.Context(), orgID, documentID, req.Text, req.Failed)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toDocumentResponse(doc))
}

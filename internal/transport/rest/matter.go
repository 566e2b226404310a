package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/service/matter"
)

// matterService defines the minimal interface needed by MatterHandler.
type matterService interface {
	Create(ctx context.Context, orgID uuid.UUID, input matter.CreateInput) (domain.Matter, error)
	Get(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error)
	List(ctx context.Context, orgID uuid.UUID, input matter.ListInput) ([]domain.Matter, error)
	UpdateStatus(ctx context.Context, orgID, matterID uuid.UUID, next domain.MatterStatus) (domain.Matter, error)
	Assign(ctx context.Context, orgID, matterID uuid.UUID, assigneeID *uuid.UUID) (domain.Matter, error)
}

// MatterHandler serves matter REST endpoints.
type MatterHandler struct {
	svc matterService
	log *slog.Logger
}

// NewMatterHandler creates a MatterHandler.
func NewMatterHandler(svc matterService, logger *slog.Logger) *MatterHandler {
	return &MatterHandler{svc: svc, log: logger.With("handler", "matter")}
}

type createMatterRequest struct {
	ClientID    string  `json:"clientId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssigneeID  *string `json:"assigneeId,omitempty"`
}

type updateMatterStatusRequest struct {
	Status string `json:"status"`
}

type assignMatterRequest struct {
	AssigneeID *string `json:"assigneeId"` // null unassigns
}

type matterResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	AssigneeID  *string   `json:"assigneeId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toMatterResponse(m domain.Matter) matterResponse {
	resp := matterResponse{
		ID:          m.ID.String(),
		ClientID:    m.ClientID.String(),
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status.String(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.AssigneeID != nil {
		s := m.AssigneeID.String()
		resp.AssigneeID = &s
	}
	return resp
}

// Create handles POST /matters.
func (h *MatterHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	var req createMatterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid clientId")
		return
	}

	input := matter.CreateInput{
		ClientID:    clientID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeValidation, "invalid assigneeId")
			return
		}
		input.AssigneeID = &assigneeID
	}

	m, err := h.svc.Create(r.Context(), orgID, input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toMatterResponse(m))
}

// Get handles GET /matters/{matterID}.
func (h *MatterHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	matterID, ok := pathUUID(w, r, "matterID")
	if !ok {
		return
	}

	m, err := h.svc.Get(r.Context(), orgID, matterID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toMatterResponse(m))
}

// List handles GET /matters?clientId= | ?assigneeId=.
func (h *MatterHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	input := matter.ListInput{Limit: limit, Offset: offset}

	if v := r.URL.Query().Get("clientId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeValidation, "invalid clientId")
			return
		}
		input.ClientID = &id
	}
	if v := r.URL.Query().Get("assigneeId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeValidation, "invalid assigneeId")
			return
		}
		input.AssigneeID = &id
	}

	matters, err := h.svc.List(r.Context(), orgID, input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]matterResponse, 0, len(matters))
	for _, m := range matters {
		out = append(out, toMatterResponse(m))
	}

	writeData(w, http.StatusOK, out)
}

// UpdateStatus handles POST /matters/{matterID}/status.
func (h *MatterHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	matterID, ok := pathUUID(w, r, "matterID")
	if !ok {
		return
	}

	var req updateMatterStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	m, err := h.svc.UpdateStatus(r.Context(), orgID, matterID, domain.MatterStatus(req.Status))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toMatterResponse(m))
}

// Assign handles POST /matters/{matterID}/assignee.
func (h *MatterHandler) Assign(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	matterID, ok := pathUUID(w, r, "matterID")
	if !ok {
		return
	}

	var req assignMatterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	var assigneeID *uuid.UUID
	if req.AssigneeID != nil {
		id, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeValidation, "invalid assigneeId")
			return
		}
		assigneeID = &id
	}

	m, err := h.svc.Assign(r.Context(), orgID, matterID, assigneeID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toMatterResponse(m))
}

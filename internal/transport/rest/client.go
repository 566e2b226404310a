package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/service/client"
)

// clientService defines the minimal interface needed by ClientHandler.
type clientService interface {
	Create(ctx context.Context, orgID uuid.UUID, input client.CreateInput) (domain.Client, error)
	Get(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error)
	List(ctx context.Context, orgID uuid.UUID, input client.ListInput) ([]domain.Client, error)
	Update(ctx context.Context, orgID, clientID uuid.UUID, input client.UpdateInput) (domain.Client, error)
	Delete(ctx context.Context, orgID, clientID uuid.UUID) error
}

// ClientHandler serves client REST endpoints.
type ClientHandler struct {
	svc clientService
	log *slog.Logger
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(svc clientService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{svc: svc, log: logger.With("handler", "client")}
}

type createClientRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

type updateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toClientResponse(c domain.Client) clientResponse {
	return clientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Create handles POST /clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), orgID, client.CreateInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toClientResponse(c))
}

// Get handles GET /clients/{clientID}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	clientID, ok := pathUUID(w, r, "clientID")
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), orgID, clientID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toClientResponse(c))
}

// List handles GET /clients?name=&limit=&offset=.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	input := client.ListInput{Limit: limit, Offset: offset}
	if name := r.URL.Query().Get("name"); name != "" {
		input.NameContains = &name
	}

	clients, err := h.svc.List(r.Context(), orgID, input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}

	writeData(w, http.StatusOK, out)
}

// Update handles PATCH /clients/{clientID}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	clientID, ok := pathUUID(w, r, "clientID")
	if !ok {
		return
	}

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	c, err := h.svc.Update(r.Context(), orgID, clientID, client.UpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toClientResponse(c))
}

// Delete handles DELETE /clients/{clientID}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	clientID, ok := pathUUID(w, r, "clientID")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), orgID, clientID); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

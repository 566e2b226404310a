package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/service/invitation"
)

// invitationService defines the minimal interface needed by InvitationHandler.
type invitationService interface {
	Create(ctx context.Context, orgID uuid.UUID, input invitation.CreateInput) (domain.Invitation, error)
	Accept(ctx context.Context, code string) (domain.Membership, error)
	Revoke(ctx context.Context, orgID, invitationID uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID) ([]domain.Invitation, error)
}

// InvitationHandler serves invitation REST endpoints.
type InvitationHandler struct {
	svc invitationService
	log *slog.Logger
}

// NewInvitationHandler creates an InvitationHandler.
func NewInvitationHandler(svc invitationService, logger *slog.Logger) *InvitationHandler {
	return &InvitationHandler{svc: svc, log: logger.With("handler", "invitation")}
}

type createInvitationRequest struct {
	Role  string  `json:"role"`
	Email *string `json:"email,omitempty"`
}

type acceptInvitationRequest struct {
	Code string `json:"code"`
}

type invitationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Role      string    `json:"role"`
	Email     *string   `json:"email,omitempty"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func toInvitationResponse(inv domain.Invitation) invitationResponse {
	return invitationResponse{
		ID:        inv.ID.String(),
		Code:      inv.Code,
		Role:      inv.Role.String(),
		Email:     inv.Email,
		Status:    inv.Status.String(),
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

// Create handles POST /invitations.
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	var req createInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	inv, err := h.svc.Create(r.Context(), orgID, invitation.CreateInput{
		Role:  domain.Role(req.Role),
		Email: req.Email,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toInvitationResponse(inv))
}

// Accept handles POST /invitations/accept. No org header: the code
// identifies the organization.
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	mb, err := h.svc.Accept(r.Context(), req.Code)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, memberResponse{
		UserID:   mb.UserID.String(),
		Role:     mb.Role.String(),
		JoinedAt: mb.CreatedAt,
	})
}

// Revoke handles POST /invitations/{invitationID}/revoke.
func (h *InvitationHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	invitationID, ok := pathUUID(w, r, "invitationID")
	if !ok {
		return
	}

	if err := h.svc.Revoke(r.Context(), orgID, invitationID); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /invitations.
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	invs, err := h.svc.List(r.Context(), orgID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]invitationResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvitationResponse(inv))
	}

	writeData(w, http.StatusOK, out)
}

package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/service/organization"
)

// orgService defines the minimal interface needed by OrgHandler.
type orgService interface {
	Create(ctx context.Context, input organization.CreateInput) (domain.Organization, error)
	Get(ctx context.Context, orgID uuid.UUID) (domain.Organization, error)
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error)
	UpdateSettings(ctx context.Context, orgID uuid.UUID, input organization.UpdateSettingsInput) (domain.Organization, error)
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error
}

// OrgHandler serves organization REST endpoints.
type OrgHandler struct {
	svc orgService
	log *slog.Logger
}

// NewOrgHandler creates an OrgHandler.
func NewOrgHandler(svc orgService, logger *slog.Logger) *OrgHandler {
	return &OrgHandler{svc: svc, log: logger.With("handler", "organization")}
}

type createOrgRequest struct {
	Name string `json:"name"`
	Plan string `json:"plan,omitempty"`
}

type updateSettingsRequest struct {
	Timezone          *string `json:"timezone,omitempty"`
	BusinessHours     *string `json:"businessHours,omitempty"`
	DefaultVisibility *string `json:"defaultVisibility,omitempty"`
}

type orgResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Plan      string              `json:"plan"`
	Settings  orgSettingsResponse `json:"settings"`
	CreatedAt time.Time           `json:"createdAt"`
}

type orgSettingsResponse struct {
	Timezone          string `json:"timezone"`
	BusinessHours     string `json:"businessHours"`
	DefaultVisibility string `json:"defaultVisibility"`
}

type memberResponse struct {
	UserID   string    `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

func toOrgResponse(org domain.Organization) orgResponse {
	return orgResponse{
		ID:   org.ID.String(),
		Name: org.Name,
		Plan: org.Plan.String(),
		Settings: orgSettingsResponse{
			Timezone:          org.Settings.Timezone,
			BusinessHours:     org.Settings.BusinessHours,
			DefaultVisibility: org.Settings.DefaultVisibility.String(),
		},
		CreatedAt: org.CreatedAt,
	}
}

// Create handles POST /orgs.
func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	org, err := h.svc.Create(r.Context(), organization.CreateInput{
		Name: req.Name,
		Plan: domain.PlanTier(req.Plan),
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toOrgResponse(org))
}

// Get handles GET /org.
func (h *OrgHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	org, err := h.svc.Get(r.Context(), orgID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toOrgResponse(org))
}

// UpdateSettings handles PATCH /org/settings.
func (h *OrgHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	input := organization.UpdateSettingsInput{
		Timezone:      req.Timezone,
		BusinessHours: req.BusinessHours,
	}
	if req.DefaultVisibility != nil {
		audience := domain.Audience(*req.DefaultVisibility)
		input.DefaultVisibility = &audience
	}

	org, err := h.svc.UpdateSettings(r.Context(), orgID, input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, toOrgResponse(org))
}

// ListMembers handles GET /org/members.
func (h *OrgHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	members, err := h.svc.ListMembers(r.Context(), orgID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{
			UserID:   m.UserID.String(),
			Role:     m.Role.String(),
			JoinedAt: m.CreatedAt,
		})
	}

	writeData(w, http.StatusOK, out)
}

// RemoveMember handles DELETE /org/members/{userID}.
func (h *OrgHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	if err := h.svc.RemoveMember(r.Context(), orgID, userID); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

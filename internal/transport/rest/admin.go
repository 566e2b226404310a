package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/service/admin"
)

// adminService defines the minimal interface needed by AdminHandler.
type adminService interface {
	Stats(ctx context.Context, orgID uuid.UUID) (admin.OrgStats, error)
	AuditTrail(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
	BuildExport(ctx context.Context, orgID uuid.UUID) (admin.Export, error)
}

// AdminHandler serves organization reporting endpoints.
type AdminHandler struct {
	svc adminService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: logger.With("handler", "admin")}
}

type auditRecordResponse struct {
	ID         string         `json:"id"`
	ActorID    string         `json:"actorId"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   *string        `json:"entityId,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Stats handles GET /org/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(r.Context(), orgID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, stats)
}

// AuditTrail handles GET /org/audit.
func (h *AdminHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	records, err := h.svc.AuditTrail(r.Context(), orgID, limit, offset)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]auditRecordResponse, 0, len(records))
	for _, rec := range records {
		resp := auditRecordResponse{
			ID:         rec.ID.String(),
			ActorID:    rec.ActorID.String(),
			Action:     rec.Action.String(),
			EntityType: rec.EntityType.String(),
			Metadata:   rec.Metadata,
			CreatedAt:  rec.CreatedAt,
		}
		if rec.EntityID != nil {
			s := rec.EntityID.String()
			resp.EntityID = &s
		}
		out = append(out, resp)
	}

	writeData(w, http.StatusOK, out)
}

// Export handles GET /org/export. The response is the full JSON dump.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}

	exp, err := h.svc.BuildExport(r.Context(), orgID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="export-`+orgID.String()+`.json"`)
	writeData(w, http.StatusOK, exp)
}

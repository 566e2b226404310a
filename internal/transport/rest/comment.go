package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/service/comment"
)

// commentService defines the minimal interface needed by CommentHandler.
type commentService interface {
	Add(ctx context.Context, orgID uuid.UUID, input comment.AddInput) (domain.Comment, error)
	List(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Comment, error)
	Delete(ctx context.Context, orgID, commentID uuid.UUID) error
}

// CommentHandler serves matter comment REST endpoints.
type CommentHandler struct {
	svc commentService
	log *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc commentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: logger.With("handler", "comment")}
}

type addCommentRequest struct {
	Body       string `json:"body"`
	Visibility string `json:"visibility,omitempty"`
}

type commentResponse struct {
	ID         string    `json:"id"`
	MatterID   string    `json:"matterId"`
	AuthorID   string    `json:"authorId"`
	Body       string    `json:"body"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID.String(),
		MatterID:   c.MatterID.String(),
		AuthorID:   c.AuthorID.String(),
		Body:       c.Body,
		Visibility: c.Visibility.String(),
		CreatedAt:  c.CreatedAt,
	}
}

// Add handles POST /matters/{matterID}/comments.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	matterID, ok := pathUUID(w, r, "matterID")
	if !ok {
		return
	}

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}

	c, err := h.svc.Add(r.Context(), orgID, comment.AddInput{
		MatterID:   matterID,
		Body:       req.Body,
		Visibility: domain.Audience(req.Visibility),
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusCreated, toCommentResponse(c))
}

// List handles GET /matters/{matterID}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	matterID, ok := pathUUID(w, r, "matterID")
	if !ok {
		return
	}

	limit, offset := pagination(r)
	comments, err := h.svc.List(r.Context(), orgID, matterID, limit, offset)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}

	writeData(w, http.StatusOK, out)
}

// Delete handles DELETE /comments/{commentID}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgFromCtx(w, r)
	if !ok {
		return
	}
	commentID, ok := pathUUID(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), orgID, commentID); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

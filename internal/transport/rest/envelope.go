package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// ErrorCode is the machine-readable error identifier carried in every
// error response. Clients switch on the code, not the message.
type ErrorCode string

const (
	CodeOrgRequired             ErrorCode = "ORG_REQUIRED"
	CodeNotAuthorized           ErrorCode = "NOT_AUTHORIZED"
	CodePlanLimit               ErrorCode = "PLAN_LIMIT"
	CodeValidation              ErrorCode = "VALIDATION_ERROR"
	CodeNotFound                ErrorCode = "NOT_FOUND"
	CodeInternal                ErrorCode = "INTERNAL_ERROR"
	CodeRateLimited             ErrorCode = "RATE_LIMITED"
	CodeConflict                ErrorCode = "CONFLICT"
	CodeInvalidStatusTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	CodeInvalidDueDate          ErrorCode = "INVALID_DUE_DATE"
	CodeAssigneeNotMember       ErrorCode = "ASSIGNEE_NOT_MEMBER"

	// Part of the public error vocabulary but not produced by any current
	// handler. Kept so clients switching on codes stay forward compatible.
	CodeSafety            ErrorCode = "SAFETY_ERROR"
	CodeAssigneeNotInCase ErrorCode = "ASSIGNEE_NOT_CASE_PARTICIPANT"
)

type errorBody struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []fieldError `json:"details,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeData wraps a result in the success envelope.
func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, successResponse{Success: true, Data: v})
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// respondError maps a service error onto the envelope. Unknown errors log
// and come back as a 500 with no detail.
func respondError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fields := make([]fieldError, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    CodeValidation,
			Message: "validation failed",
			Details: fields,
		}})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidDueDate):
		writeError(w, http.StatusBadRequest, CodeInvalidDueDate, "due date must be in the future")
	case errors.Is(err, domain.ErrAssigneeNotMember):
		writeError(w, http.StatusBadRequest, CodeAssigneeNotMember, "assignee is not a member of the organization")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, CodeValidation, "validation failed")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, CodeNotAuthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, CodeNotAuthorized, "not authorized")
	case errors.Is(err, domain.ErrPlanLimit):
		writeError(w, http.StatusForbidden, CodePlanLimit, "not available on the current plan")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, CodeInvalidStatusTransition, "status transition not allowed")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, CodeConflict, "conflict")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

package matter

import (
	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// CreateInput holds the parameters for creating a matter.
type CreateInput struct {
	ClientID    uuid.UUID
	Title       string
	Description *string
	AssigneeID  *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "clientId", Message: "required"})
	}
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 300 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 300)"})
	}
	if i.Description != nil && len(*i.Description) > 10000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 10000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput narrows a matter listing to one scope.
type ListInput struct {
	ClientID   *uuid.UUID
	AssigneeID *uuid.UUID
	Limit      int
	Offset     int
}

// Validate requires exactly one scope.
func (i *ListInput) Validate() error {
	if (i.ClientID == nil) == (i.AssigneeID == nil) {
		return domain.NewValidationError("scope", "exactly one of clientId or assigneeId is required")
	}
	return nil
}

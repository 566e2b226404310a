package invitation

import (
	"strings"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// CreateInput describes a new invitation.
type CreateInput struct {
	Role  domain.Role
	Email *string
}

// Validate checks the input and returns a validation error if invalid.
func (in CreateInput) Validate() error {
	var fieldErrors []domain.FieldError

	if !in.Role.IsValid() {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "role", Message: "unknown role"})
	} else if !in.Role.Invitable() {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "role", Message: "role cannot be granted by invitation"})
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" || !strings.Contains(email, "@") {
			fieldErrors = append(fieldErrors, domain.FieldError{Field: "email", Message: "must be a valid email address"})
		}
	}

	if len(fieldErrors) > 0 {
		return domain.NewValidationErrors(fieldErrors)
	}

	return nil
}

package client

import (
	"strings"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// CreateInput holds the parameters for creating a client.
type CreateInput struct {
	Name  string
	Email *string
	Phone *string
	Notes *string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
	}

	errs = append(errs, validateContact(i.Email, i.Phone, i.Notes)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds partial field updates for a client.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Name  *string
	Email *string
	Phone *string
	Notes *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil {
		if *i.Name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
		} else if len(*i.Name) > 200 {
			errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
		}
	}

	errs = append(errs, validateContact(i.Email, i.Phone, i.Notes)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateContact(email, phone, notes *string) []domain.FieldError {
	var errs []domain.FieldError

	if email != nil && *email != "" && !strings.Contains(*email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	if phone != nil && len(*phone) > 50 {
		errs = append(errs, domain.FieldError{Field: "phone", Message: "too long (max 50)"})
	}
	if notes != nil && len(*notes) > 5000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "too long (max 5000)"})
	}

	return errs
}

// ListInput narrows a client listing.
type ListInput struct {
	NameContains *string
	Limit        int
	Offset       int
}

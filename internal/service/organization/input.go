package organization

import (
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// CreateInput holds the parameters for creating an organization.
type CreateInput struct {
	Name string
	Plan domain.PlanTier // zero value -> free
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
	}

	if i.Plan != "" && !i.Plan.IsValid() {
		errs = append(errs, domain.FieldError{Field: "plan", Message: "unknown plan"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateSettingsInput holds the parameters for updating organization settings.
// Nil pointers mean "leave unchanged".
type UpdateSettingsInput struct {
	Timezone          *string
	BusinessHours     *string
	DefaultVisibility *domain.Audience
}

// Validate checks all fields and collects all errors.
func (i *UpdateSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.Timezone != nil && *i.Timezone == "" {
		errs = append(errs, domain.FieldError{Field: "timezone", Message: "must not be empty"})
	}
	if i.BusinessHours != nil && len(*i.BusinessHours) > 100 {
		errs = append(errs, domain.FieldError{Field: "businessHours", Message: "too long (max 100)"})
	}
	if i.DefaultVisibility != nil && !i.DefaultVisibility.IsValid() {
		errs = append(errs, domain.FieldError{Field: "defaultVisibility", Message: "unknown audience"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

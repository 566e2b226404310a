package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

// LogTime records billable work against a matter. The entry stays unbilled
// until an invoice consumes it.
func (s *Service) LogTime(ctx context.Context, orgID uuid.UUID, input LogTimeInput) (domain.TimeEntry, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature: entitlement.FeatureInvoicing,
	})
	if err != nil {
		return domain.TimeEntry{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.TimeEntry{}, err
	}

	if _, err := s.matters.GetByID(ctx, orgID, input.MatterID); err != nil {
		return domain.TimeEntry{}, fmt.Errorf("get matter: %w", err)
	}

	now := s.now().UTC()
	entry := domain.TimeEntry{
		ID:             uuid.New(),
		OrganizationID: orgID,
		MatterID:       input.MatterID,
		UserID:         callerID,
		Description:    input.Description,
		Minutes:        input.Minutes,
		RateCents:      input.RateCents,
		WorkedAt:       input.WorkedAt.UTC(),
		CreatedAt:      now,
	}

	if err := s.invoices.CreateTimeEntry(ctx, entry); err != nil {
		return domain.TimeEntry{}, fmt.Errorf("create time entry: %w", err)
	}

	return entry, nil
}

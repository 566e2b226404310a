package matter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

// Create opens a new matter for a client. An assignee, when given, must be
// an organization member.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, input CreateInput) (domain.Matter, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermMatterManage})
	if err != nil {
		return domain.Matter{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Matter{}, err
	}

	if _, err := s.clients.GetByID(ctx, orgID, input.ClientID); err != nil {
		return domain.Matter{}, err
	}

	if input.AssigneeID != nil {
		if err := s.requireMember(ctx, orgID, *input.AssigneeID); err != nil {
			return domain.Matter{}, err
		}
	}

	now := s.now().UTC()
	m := domain.Matter{
		ID:             uuid.New(),
		OrganizationID: orgID,
		ClientID:       input.ClientID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         domain.MatterStatusOpen,
		AssigneeID:     input.AssigneeID,
		CreatedBy:      callerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.matters.Create(ctx, m); err != nil {
		return domain.Matter{}, err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionCreate, domain.EntityTypeMatter, &m.ID,
		map[string]any{"title": m.Title, "clientId": m.ClientID.String()})

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: orgID,
		MatterID:       &m.ID,
		EventType:      "matter.created",
		EntityType:     domain.EntityTypeMatter,
		EntityID:       m.ID,
		Actor:          domain.UserActor(callerID),
		Payload:        map[string]any{"title": m.Title},
	})

	return m, nil
}

// Get returns a matter.
func (s *Service) Get(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{}); err != nil {
		return domain.Matter{}, err
	}

	return s.matters.GetByID(ctx, orgID, matterID)
}

// List returns matters in one scope: by client or by assignee.
func (s *Service) List(ctx context.Context, orgID uuid.UUID, input ListInput) ([]domain.Matter, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{}); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	if input.ClientID != nil {
		return s.matters.ListByClient(ctx, orgID, *input.ClientID, limit, input.Offset)
	}
	return s.matters.ListByAssignee(ctx, orgID, *input.AssigneeID, limit, input.Offset)
}

// UpdateStatus moves a matter along its lifecycle. Illegal transitions are
// rejected, never coerced.
func (s *Service) UpdateStatus(ctx context.Context, orgID, matterID uuid.UUID, next domain.MatterStatus) (domain.Matter, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermMatterManage})
	if err != nil {
		return domain.Matter{}, err
	}

	if !next.IsValid() {
		return domain.Matter{}, domain.NewValidationError("status", "unknown status")
	}

	m, err := s.matters.GetByID(ctx, orgID, matterID)
	if err != nil {
		return domain.Matter{}, err
	}

	if !m.Status.CanTransitionTo(next) {
		return domain.Matter{}, fmt.Errorf("%s -> %s: %w", m.Status, next, domain.ErrInvalidTransition)
	}

	prev := m.Status
	m.Status = next
	m.UpdatedAt = s.now().UTC()

	if err := s.matters.UpdateStatus(ctx, m); err != nil {
		return domain.Matter{}, err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionUpdate, domain.EntityTypeMatter, &matterID,
		map[string]any{"status": next.String(), "previous": prev.String()})

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: orgID,
		MatterID:       &matterID,
		EventType:      "matter.status_changed",
		EntityType:     domain.EntityTypeMatter,
		EntityID:       matterID,
		Actor:          domain.UserActor(callerID),
		Payload:        map[string]any{"status": next.String(), "previous": prev.String()},
	})

	return m, nil
}

// Assign sets or clears a matter's assignee. The assignee must be a member
// of the organization.
func (s *Service) Assign(ctx context.Context, orgID, matterID uuid.UUID, assigneeID *uuid.UUID) (domain.Matter, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermMatterManage})
	if err != nil {
		return domain.Matter{}, err
	}

	m, err := s.matters.GetByID(ctx, orgID, matterID)
	if err != nil {
		return domain.Matter{}, err
	}

	if assigneeID != nil {
		if err := s.requireMember(ctx, orgID, *assigneeID); err != nil {
			return domain.Matter{}, err
		}
	}

	m.AssigneeID = assigneeID
	m.UpdatedAt = s.now().UTC()

	if err := s.matters.UpdateAssignee(ctx, m); err != nil {
		return domain.Matter{}, err
	}

	payload := map[string]any{}
	if assigneeID != nil {
		payload["assigneeId"] = assigneeID.String()
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionUpdate, domain.EntityTypeMatter, &matterID, payload)

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: orgID,
		MatterID:       &matterID,
		EventType:      "matter.assigned",
		EntityType:     domain.EntityTypeMatter,
		EntityID:       matterID,
		Actor:          domain.UserActor(callerID),
		Payload:        payload,
	})

	return m, nil
}

func (s *Service) requireMember(ctx context.Context, orgID, userID uuid.UUID) error {
	_, err := s.memberships.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("user %s: %w", userID, domain.ErrAssigneeNotMember)
		}
		return fmt.Errorf("get assignee membership: %w", err)
	}
	return nil
}

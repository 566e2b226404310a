package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

// Create registers a new client for the organization.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, input CreateInput) (domain.Client, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermClientManage})
	if err != nil {
		return domain.Client{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Client{}, err
	}

	now := s.now().UTC()
	c := domain.Client{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Notes:          input.Notes,
		CreatedBy:      callerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.clients.Create(ctx, c); err != nil {
		return domain.Client{}, err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionCreate, domain.EntityTypeClient, &c.ID,
		map[string]any{"name": c.Name})

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: orgID,
		EventType:      "client.created",
		EntityType:     domain.EntityTypeClient,
		EntityID:       c.ID,
		Actor:          domain.UserActor(callerID),
		Payload:        map[string]any{"name": c.Name},
	})

	return c, nil
}

// Get returns a client. Cross-organization and soft-deleted reads surface
// as not found.
func (s *Service) Get(ctx context.Context, orgID, clientID uuid.UUID) (domain.Client, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{}); err != nil {
		return domain.Client{}, err
	}

	return s.clients.GetByID(ctx, orgID, clientID)
}

// List returns the organization's clients matching the filter.
func (s *Service) List(ctx context.Context, orgID uuid.UUID, input ListInput) ([]domain.Client, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{}); err != nil {
		return nil, err
	}

	filter := domain.ClientFilter{
		NameContains: input.NameContains,
		Limit:        clampLimit(input.Limit),
		Offset:       input.Offset,
	}

	return s.clients.List(ctx, orgID, filter)
}

// Update applies partial changes to a client.
func (s *Service) Update(ctx context.Context, orgID, clientID uuid.UUID, input UpdateInput) (domain.Client, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermClientManage})
	if err != nil {
		return domain.Client{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Client{}, err
	}

	c, err := s.clients.GetByID(ctx, orgID, clientID)
	if err != nil {
		return domain.Client{}, err
	}

	changes := map[string]any{}
	if input.Name != nil {
		c.Name = *input.Name
		changes["name"] = *input.Name
	}
	if input.Email != nil {
		c.Email = input.Email
		changes["email"] = *input.Email
	}
	if input.Phone != nil {
		c.Phone = input.Phone
		changes["phone"] = *input.Phone
	}
	if input.Notes != nil {
		c.Notes = input.Notes
		changes["notes"] = true
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.clients.Update(ctx, c); err != nil {
		return domain.Client{}, err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionUpdate, domain.EntityTypeClient, &clientID, changes)

	return c, nil
}

// Delete soft-deletes a client. A client with open or in-progress matters
// cannot be deleted.
func (s *Service) Delete(ctx context.Context, orgID, clientID uuid.UUID) error {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermClientManage})
	if err != nil {
		return err
	}

	c, err := s.clients.GetByID(ctx, orgID, clientID)
	if err != nil {
		return err
	}

	active, err := s.clients.CountActiveMatters(ctx, orgID, clientID)
	if err != nil {
		return fmt.Errorf("count active matters: %w", err)
	}
	if active > 0 {
		return fmt.Errorf("client has %d active matter(s): %w", active, domain.ErrConflict)
	}

	now := s.now().UTC()
	c.DeletedAt = &now
	if err := s.clients.SoftDelete(ctx, c); err != nil {
		return err
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionDelete, domain.EntityTypeClient, &clientID,
		map[string]any{"name": c.Name})

	return nil
}

func clampLimit(limit int) int {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Package event implements the domain event repository using PostgreSQL.
// Events are append-only: there are no update or delete operations.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides domain event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createEventSQL = `
INSERT INTO domain_events (
  id, organization_id, matter_id, event_type, entity_type, entity_id,
  actor_type, actor_id, visibility, payload, occurred_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const getEventByIDSQL = `
SELECT id, organization_id, matter_id, event_type, entity_type, entity_id,
       actor_type, actor_id, visibility, payload, occurred_at
FROM domain_events
WHERE id = $1 AND organization_id = $2`

const listEventsByMatterSQL = `
SELECT id, organization_id, matter_id, event_type, entity_type, entity_id,
       actor_type, actor_id, visibility, payload, occurred_at
FROM domain_events
WHERE organization_id = $1 AND matter_id = $2
ORDER BY occurred_at DESC
LIMIT $3 OFFSET $4`

// Create inserts an immutable event row.
func (r *Repo) Create(ctx context.Context, ev domain.DomainEvent) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	visibility, err := json.Marshal(ev.Visibility)
	if err != nil {
		return fmt.Errorf("marshal visibility: %w", err)
	}

	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = querier.Exec(ctx, createEventSQL,
		ev.ID, ev.OrganizationID, ev.MatterID, ev.EventType, ev.EntityType, ev.EntityID,
		ev.Actor.Type, ev.Actor.ID, visibility, payload, ev.OccurredAt,
	)
	if err != nil {
		return postgres.MapError(err, "event", ev.ID.String())
	}

	return nil
}

// GetByID returns an event scoped by organization.
func (r *Repo) GetByID(ctx context.Context, orgID, eventID uuid.UUID) (domain.DomainEvent, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getEventByIDSQL, eventID, orgID)

	ev, err := scanEvent(row)
	if err != nil {
		return domain.DomainEvent{}, postgres.MapError(err, "event", eventID.String())
	}

	return ev, nil
}

// ListByMatter returns events for a matter, newest first.
func (r *Repo) ListByMatter(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.DomainEvent, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listEventsByMatterSQL, orgID, matterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list events by matter: %w", err)
	}
	defer rows.Close()

	var events []domain.DomainEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	if events == nil {
		events = []domain.DomainEvent{}
	}

	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.DomainEvent, error) {
	var (
		ev         domain.DomainEvent
		entityType string
		actorType  string
		visibility []byte
		payload    []byte
		occurredAt time.Time
	)

	if err := row.Scan(&ev.ID, &ev.OrganizationID, &ev.MatterID, &ev.EventType,
		&entityType, &ev.EntityID, &actorType, &ev.Actor.ID,
		&visibility, &payload, &occurredAt); err != nil {
		return domain.DomainEvent{}, err
	}

	ev.EntityType = domain.EntityType(entityType)
	ev.Actor.Type = domain.ActorType(actorType)
	ev.OccurredAt = occurredAt

	if err := json.Unmarshal(visibility, &ev.Visibility); err != nil {
		return domain.DomainEvent{}, fmt.Errorf("unmarshal visibility: %w", err)
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &ev.Payload); err != nil {
			return domain.DomainEvent{}, fmt.Errorf("unmarshal payload: %w", err)
		}
	}

	return ev, nil
}

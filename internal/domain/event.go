package domain

import (
	"time"

	"github.com/google/uuid"
)

// Actor identifies who caused a domain event.
type Actor struct {
	Type ActorType `json:"actorType"`
	ID   string    `json:"actorId"`
}

// UserActor returns an Actor for a user id.
func UserActor(id uuid.UUID) Actor {
	return Actor{Type: ActorTypeUser, ID: id.String()}
}

// SystemActor returns an Actor for system-initiated events.
func SystemActor() Actor {
	return Actor{Type: ActorTypeSystem, ID: "system"}
}

// Visibility controls which audience may be notified about an event.
// RolesAllowed, when non-empty, further restricts the member roles that
// receive the notification; filtering is the dispatch processor's job.
type Visibility struct {
	Audience     Audience `json:"audience"`
	RolesAllowed []Role   `json:"rolesAllowed,omitempty"`
}

// DomainEvent is an immutable fact record: "X happened to entity Y".
// Once written it is never mutated or deleted.
type DomainEvent struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	MatterID       *uuid.UUID
	EventType      string // dotted, e.g. "comment.added"
	EntityType     EntityType
	EntityID       uuid.UUID
	Actor          Actor
	Visibility     Visibility
	Payload        map[string]any
	OccurredAt     time.Time
}

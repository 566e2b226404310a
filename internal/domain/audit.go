package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is an immutable compliance-trail entry: who did what to which
// entity. Append-only; not consumed by the outbox.
type AuditRecord struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ActorID        uuid.UUID
	Action         AuditAction
	EntityType     EntityType
	EntityID       *uuid.UUID
	Metadata       map[string]any
	CreatedAt      time.Time
}

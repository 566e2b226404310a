package domain

import (
	"time"

	"github.com/google/uuid"
)

// Matter is a legal case handled for a client.
type Matter struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ClientID       uuid.UUID
	Title          string
	Description    *string
	Status         MatterStatus
	AssigneeID     *uuid.UUID
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive reports whether the matter still blocks client deletion.
func (m *Matter) IsActive() bool {
	return m.Status == MatterStatusOpen || m.Status == MatterStatusInProgress
}

// Comment is a note attached to a matter.
type Comment struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	MatterID       uuid.UUID
	AuthorID       uuid.UUID
	Body           string
	Visibility     Audience
	CreatedAt      time.Time
}

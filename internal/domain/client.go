package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is a person or company the firm represents.
type Client struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Email          *string
	Phone          *string
	Notes          *string
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// IsDeleted reports whether the client has been soft-deleted.
func (c *Client) IsDeleted() bool { return c.DeletedAt != nil }

// ClientUpdateParams holds optional field updates for a client.
// Nil pointers mean "leave unchanged".
type ClientUpdateParams struct {
	Name  *string
	Email *string
	Phone *string
	Notes *string
}

// ClientFilter narrows client listings.
type ClientFilter struct {
	NameContains *string
	Limit        int
	Offset       int
}

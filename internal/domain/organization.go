package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant boundary. Every other entity is scoped under
// exactly one organization.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Plan      PlanTier
	Settings  OrgSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrgSettings holds per-organization preferences.
type OrgSettings struct {
	Timezone          string   `json:"timezone"`
	BusinessHours     string   `json:"businessHours"`
	DefaultVisibility Audience `json:"defaultVisibility"`
}

// DefaultOrgSettings returns OrgSettings with sensible defaults.
func DefaultOrgSettings() OrgSettings {
	return OrgSettings{
		Timezone:          "UTC",
		BusinessHours:     "09:00-18:00",
		DefaultVisibility: AudienceInternal,
	}
}

// Membership binds a user to an organization with a single role.
// A user has at most one role per organization.
type Membership struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Invitation is a single-use code granting membership at a fixed role.
type Invitation struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Code           string
	Role           Role
	Email          *string
	Status         InvitationStatus
	InvitedBy      uuid.UUID
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsExpired reports whether the invitation has expired relative to now.
func (i *Invitation) IsExpired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

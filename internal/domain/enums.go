package domain

// Role represents a member's authority inside an organization.
type Role string

const (
	RoleOwner     Role = "OWNER"
	RoleAdmin     Role = "ADMIN"
	RoleLawyer    Role = "LAWYER"
	RoleParalegal Role = "PARALEGAL"
	RoleViewer    Role = "VIEWER"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleLawyer, RoleParalegal, RoleViewer:
		return true
	}
	return false
}

// Invitable reports whether a role may be granted via an invitation code.
// OWNER is assigned only at organization creation; ADMIN only by an owner
// through direct membership management.
func (r Role) Invitable() bool {
	switch r {
	case RoleLawyer, RoleParalegal, RoleViewer:
		return true
	}
	return false
}

// PlanTier represents the organization's subscription plan.
type PlanTier string

const (
	PlanFree PlanTier = "free"
	PlanTeam PlanTier = "team"
	PlanFirm PlanTier = "firm"
)

func (p PlanTier) String() string { return string(p) }

func (p PlanTier) IsValid() bool {
	switch p {
	case PlanFree, PlanTeam, PlanFirm:
		return true
	}
	return false
}

// MatterStatus represents the lifecycle state of a matter (case).
type MatterStatus string

const (
	MatterStatusOpen       MatterStatus = "open"
	MatterStatusInProgress MatterStatus = "in_progress"
	MatterStatusClosed     MatterStatus = "closed"
	MatterStatusArchived   MatterStatus = "archived"
)

func (s MatterStatus) String() string { return string(s) }

func (s MatterStatus) IsValid() bool {
	switch s {
	case MatterStatusOpen, MatterStatusInProgress, MatterStatusClosed, MatterStatusArchived:
		return true
	}
	return false
}

// CanTransitionTo reports whether the matter status machine allows s -> next.
func (s MatterStatus) CanTransitionTo(next MatterStatus) bool {
	switch s {
	case MatterStatusOpen:
		return next == MatterStatusInProgress || next == MatterStatusClosed
	case MatterStatusInProgress:
		return next == MatterStatusClosed
	case MatterStatusClosed:
		return next == MatterStatusArchived
	}
	return false
}

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

func (s InvoiceStatus) String() string { return string(s) }

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// AcceptsPayment reports whether a payment may be recorded against an
// invoice in this status.
func (s InvoiceStatus) AcceptsPayment() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPartial
}

// InvitationStatus represents the state of an invitation code.
type InvitationStatus string

const (
	InvitationStatusPending InvitationStatus = "pending"
	InvitationStatusUsed    InvitationStatus = "used"
	InvitationStatusRevoked InvitationStatus = "revoked"
)

func (s InvitationStatus) String() string { return string(s) }

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationStatusPending, InvitationStatusUsed, InvitationStatusRevoked:
		return true
	}
	return false
}

// ExtractionStatus represents the state of a document's text extraction.
type ExtractionStatus string

const (
	ExtractionStatusNone      ExtractionStatus = "none"
	ExtractionStatusPending   ExtractionStatus = "pending"
	ExtractionStatusExtracted ExtractionStatus = "extracted"
	ExtractionStatusFailed    ExtractionStatus = "failed"
)

func (s ExtractionStatus) String() string { return string(s) }

func (s ExtractionStatus) IsValid() bool {
	switch s {
	case ExtractionStatusNone, ExtractionStatusPending, ExtractionStatusExtracted, ExtractionStatusFailed:
		return true
	}
	return false
}

// ActorType identifies who performed an action.
type ActorType string

const (
	ActorTypeUser   ActorType = "user"
	ActorTypeSystem ActorType = "system"
)

func (a ActorType) String() string { return string(a) }

func (a ActorType) IsValid() bool {
	return a == ActorTypeUser || a == ActorTypeSystem
}

// Audience controls which channels may receive a domain event notification.
type Audience string

const (
	AudienceInternal Audience = "internal"
	AudienceClient   Audience = "client"
	AudienceBoth     Audience = "both"
)

func (a Audience) String() string { return string(a) }

func (a Audience) IsValid() bool {
	switch a {
	case AudienceInternal, AudienceClient, AudienceBoth:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in audit and events).
type EntityType string

const (
	EntityTypeOrganization EntityType = "ORGANIZATION"
	EntityTypeMembership   EntityType = "MEMBERSHIP"
	EntityTypeClient       EntityType = "CLIENT"
	EntityTypeMatter       EntityType = "MATTER"
	EntityTypeComment      EntityType = "COMMENT"
	EntityTypeInvitation   EntityType = "INVITATION"
	EntityTypeInvoice      EntityType = "INVOICE"
	EntityTypeDocument     EntityType = "DOCUMENT"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeOrganization, EntityTypeMembership, EntityTypeClient, EntityTypeMatter,
		EntityTypeComment, EntityTypeInvitation, EntityTypeInvoice, EntityTypeDocument:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit trail.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

package entitlement

import "github.com/praxisworks/lawdesk-backend/internal/domain"

// Feature is a plan-gated capability.
type Feature string

const (
	FeatureDocuments      Feature = "documents"
	FeatureInvoicing      Feature = "invoicing"
	FeatureTextExtraction Feature = "text_extraction"
	FeatureExports        Feature = "exports"
	FeatureClientPortal   Feature = "client_portal"
)

// Permission is a role-gated operation.
type Permission string

const (
	PermClientManage     Permission = "client.manage"
	PermMatterManage     Permission = "matter.manage"
	PermCommentWrite     Permission = "comment.write"
	PermInvoiceManage    Permission = "invoice.manage"
	PermDocumentUpload   Permission = "document.upload"
	PermInvitationManage Permission = "invitation.manage"
	PermMemberManage     Permission = "member.manage"
	PermOrgSettings      Permission = "org.settings"
	PermExportRun        Permission = "export.run"
)

// planFeatures maps each plan tier to its feature set. This matrix is the
// single source of truth for plan gating.
var planFeatures = map[domain.PlanTier]map[Feature]bool{
	domain.PlanFree: {},
	domain.PlanTeam: {
		FeatureDocuments: true,
		FeatureInvoicing: true,
	},
	domain.PlanFirm: {
		FeatureDocuments:      true,
		FeatureInvoicing:      true,
		FeatureTextExtraction: true,
		FeatureExports:        true,
		FeatureClientPortal:   true,
	},
}

// rolePermissions maps each role to its granted permissions. OWNER and
// ADMIN hold every permission; VIEWER holds none (read-only access is
// implied by membership alone).
var rolePermissions = map[domain.Role]map[Permission]bool{
	domain.RoleOwner: allPermissions(),
	domain.RoleAdmin: allPermissions(),
	domain.RoleLawyer: {
		PermClientManage:   true,
		PermMatterManage:   true,
		PermCommentWrite:   true,
		PermInvoiceManage:  true,
		PermDocumentUpload: true,
	},
	domain.RoleParalegal: {
		PermCommentWrite:   true,
		PermDocumentUpload: true,
	},
	domain.RoleViewer: {},
}

func allPermissions() map[Permission]bool {
	return map[Permission]bool{
		PermClientManage:     true,
		PermMatterManage:     true,
		PermCommentWrite:     true,
		PermInvoiceManage:    true,
		PermDocumentUpload:   true,
		PermInvitationManage: true,
		PermMemberManage:     true,
		PermOrgSettings:      true,
		PermExportRun:        true,
	}
}

// PlanHasFeature reports whether a plan tier includes a feature.
func PlanHasFeature(plan domain.PlanTier, f Feature) bool {
	return planFeatures[plan][f]
}

// RoleHasPermission reports whether a role grants a permission.
func RoleHasPermission(role domain.Role, p Permission) bool {
	return rolePermissions[role][p]
}

// Package entitlement computes allow/deny decisions from membership, plan,
// and the static role/feature matrices. Decisions are computed fresh on
// every call so a membership or plan change takes effect immediately.
package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Reason names the first failing gate of a denied decision. Callers rely
// on the gate order (membership, then plan, then role) to pick a precise
// user-facing error.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonOrgMember   Reason = "ORG_MEMBER"
	ReasonPlanLimit   Reason = "PLAN_LIMIT"
	ReasonRoleBlocked Reason = "ROLE_BLOCKED"
)

// Decision is the outcome of an entitlement evaluation. Ephemeral, never
// persisted or cached.
type Decision struct {
	Allowed bool
	Reason  Reason
	Role    domain.Role // set when the caller is a member
}

// Requirement narrows an evaluation to a plan feature and/or a permission.
// Zero values mean "membership alone suffices".
type Requirement struct {
	Feature    Feature
	Permission Permission
}

type membershipRepo interface {
	Get(ctx context.Context, orgID, userID uuid.UUID) (domain.Membership, error)
}

type orgRepo interface {
	GetByID(ctx context.Context, orgID uuid.UUID) (domain.Organization, error)
}

// Evaluator checks a caller's entitlement within an organization.
// Read-only; safe to call repeatedly.
type Evaluator struct {
	memberships membershipRepo
	orgs        orgRepo
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(memberships membershipRepo, orgs orgRepo) *Evaluator {
	return &Evaluator{memberships: memberships, orgs: orgs}
}

// Evaluate runs the three gates in fixed order: membership, plan feature,
// role permission. The reported Reason is always the first failing gate.
func (e *Evaluator) Evaluate(ctx context.Context, callerID, orgID uuid.UUID, req Requirement) (Decision, error) {
	member, err := e.memberships.Get(ctx, orgID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Decision{Allowed: false, Reason: ReasonOrgMember}, nil
		}
		return Decision{}, fmt.Errorf("get membership: %w", err)
	}

	if req.Feature != "" {
		org, err := e.orgs.GetByID(ctx, orgID)
		if err != nil {
			return Decision{}, fmt.Errorf("get organization: %w", err)
		}
		if !PlanHasFeature(org.Plan, req.Feature) {
			return Decision{Allowed: false, Reason: ReasonPlanLimit, Role: member.Role}, nil
		}
	}

	if req.Permission != "" && !RoleHasPermission(member.Role, req.Permission) {
		return Decision{Allowed: false, Reason: ReasonRoleBlocked, Role: member.Role}, nil
	}

	return Decision{Allowed: true, Role: member.Role}, nil
}

// DecisionError maps a denied decision to the domain error the transport
// layer translates into a response code.
func DecisionError(d Decision) error {
	switch d.Reason {
	case ReasonOrgMember:
		return fmt.Errorf("not an organization member: %w", domain.ErrForbidden)
	case ReasonPlanLimit:
		return fmt.Errorf("feature not included in plan: %w", domain.ErrPlanLimit)
	case ReasonRoleBlocked:
		return fmt.Errorf("role lacks permission: %w", domain.ErrForbidden)
	}
	return nil
}

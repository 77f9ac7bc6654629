package access

import (
	"github.com/google/uuid"

	"supplies-service/internal/models"
)

// Identity is the caller's claims as supplied by the session provider.
type Identity struct {
	ID         uuid.UUID `json:"id"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
}

// Decision is the outcome of an authorization check. When Allowed is true the
// caller must still honor DepartmentRestricted and AdditionalRestrictions by
// pre-filtering the data it touches; the evaluator never filters collections
// itself.
type Decision struct {
	Allowed                bool     `json:"allowed"`
	Reason                 string   `json:"reason,omitempty"`
	DepartmentRestricted   bool     `json:"departmentRestricted,omitempty"`
	AdditionalRestrictions []string `json:"additionalRestrictions,omitempty"`
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CheckAccess evaluates whether the identity may perform action on feature.
//
// targetDepartment narrows the check to a specific department: a MANAGER on a
// department-restricted feature is denied outside their own department. An
// empty targetDepartment means the caller will pre-filter, so the check
// passes with DepartmentRestricted surfaced in the decision.
//
// Unknown roles, features, and actions all deny. Pure: no I/O, safe for
// concurrent use.
func (p *Policy) CheckAccess(id Identity, feature Feature, action Action, targetDepartment string) Decision {
	perms, ok := p.features[id.Role]
	if !ok {
		return deny("Unauthorized")
	}
	perm, ok := perms[feature]
	if !ok {
		return deny("Unauthorized")
	}
	if !perm.allows(action) {
		return deny("Unauthorized")
	}

	// ADMIN is never department-restricted; the restriction applies to
	// managers only.
	restricted := perm.DepartmentRestricted && id.Role == models.RoleManager
	if restricted && targetDepartment != "" && targetDepartment != id.Department {
		return deny("Unauthorized")
	}

	return Decision{
		Allowed:                true,
		DepartmentRestricted:   restricted,
		AdditionalRestrictions: perm.AdditionalRestrictions,
	}
}

// PersonalOnly reports whether the decision carries the personal_only
// restriction, i.e. results must be filtered to records owned by the caller.
func (d Decision) PersonalOnly() bool {
	for _, r := range d.AdditionalRestrictions {
		if r == RestrictionPersonalOnly {
			return true
		}
	}
	return false
}

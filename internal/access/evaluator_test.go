package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"supplies-service/internal/models"
)

func adminIdentity() Identity {
	return Identity{ID: uuid.New(), Role: models.RoleAdmin, Department: "Operations"}
}

func managerIdentity(dept string) Identity {
	return Identity{ID: uuid.New(), Role: models.RoleManager, Department: dept}
}

func employeeIdentity(dept string) Identity {
	return Identity{ID: uuid.New(), Role: models.RoleEmployee, Department: dept}
}

// ===========================================
// Fail-closed behavior
// ===========================================

func TestCheckAccess_UnknownRoleDenies(t *testing.T) {
	policy := DefaultPolicy()
	id := Identity{ID: uuid.New(), Role: "CONTRACTOR", Department: "Sales"}

	decision := policy.CheckAccess(id, FeatureRequests, ActionView, "")

	assert.False(t, decision.Allowed)
	assert.Equal(t, "Unauthorized", decision.Reason)
}

func TestCheckAccess_UnknownFeatureDenies(t *testing.T) {
	policy := DefaultPolicy()

	for _, id := range []Identity{adminIdentity(), managerIdentity("Sales"), employeeIdentity("Sales")} {
		decision := policy.CheckAccess(id, Feature("payroll"), ActionView, "")
		assert.False(t, decision.Allowed, "role %s must be denied on unknown feature", id.Role)
	}
}

func TestCheckAccess_UnknownActionDenies(t *testing.T) {
	policy := DefaultPolicy()

	decision := policy.CheckAccess(adminIdentity(), FeatureRequests, Action("canExport"), "")

	assert.False(t, decision.Allowed)
}

func TestCheckAccess_FeatureAbsentForRoleDenies(t *testing.T) {
	policy := DefaultPolicy()

	// Employees have no suppliers entry at all.
	decision := policy.CheckAccess(employeeIdentity("Sales"), FeatureSuppliers, ActionView, "")

	assert.False(t, decision.Allowed)
}

// ===========================================
// ADMIN policy facts
// ===========================================

func TestCheckAccess_AdminCannotCreateRequests(t *testing.T) {
	policy := DefaultPolicy()

	decision := policy.CheckAccess(adminIdentity(), FeatureRequests, ActionCreate, "")

	assert.False(t, decision.Allowed)
}

func TestCheckAccess_AdminCanDeleteInventory(t *testing.T) {
	policy := DefaultPolicy()

	decision := policy.CheckAccess(adminIdentity(), FeatureInventory, ActionDelete, "")

	assert.True(t, decision.Allowed)
}

func TestCheckAccess_AdminNeverDepartmentRestricted(t *testing.T) {
	policy := DefaultPolicy()
	admin := adminIdentity()

	for _, feature := range []Feature{FeatureRequests, FeatureInventory, FeatureReports, FeaturePendingApprovals} {
		decision := policy.CheckAccess(admin, feature, ActionView, "Engineering")
		assert.True(t, decision.Allowed, "admin must reach %s in any department", feature)
		assert.False(t, decision.DepartmentRestricted)
	}
}

func TestCheckAccess_AdminCanViewAuditLogs(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.CheckAccess(adminIdentity(), FeatureAuditLogs, ActionView, "").Allowed)
	assert.False(t, policy.CheckAccess(managerIdentity("Sales"), FeatureAuditLogs, ActionView, "").Allowed)
	assert.False(t, policy.CheckAccess(employeeIdentity("Sales"), FeatureAuditLogs, ActionView, "").Allowed)
}

// ===========================================
// MANAGER department scoping
// ===========================================

func TestCheckAccess_ManagerScopedToOwnDepartment(t *testing.T) {
	policy := DefaultPolicy()
	manager := managerIdentity("Sales")

	restricted := []Feature{FeatureRequests, FeatureInventory, FeatureReports, FeatureQuickReports, FeatureLowStockAlerts, FeaturePendingApprovals}
	for _, feature := range restricted {
		own := policy.CheckAccess(manager, feature, ActionView, "Sales")
		assert.True(t, own.Allowed, "manager must view %s in own department", feature)
		assert.True(t, own.DepartmentRestricted)

		other := policy.CheckAccess(manager, feature, ActionView, "Engineering")
		assert.False(t, other.Allowed, "manager must not view %s in another department", feature)
	}
}

func TestCheckAccess_ManagerEmptyTargetSurfacesRestriction(t *testing.T) {
	policy := DefaultPolicy()

	decision := policy.CheckAccess(managerIdentity("Sales"), FeatureRequests, ActionView, "")

	assert.True(t, decision.Allowed)
	assert.True(t, decision.DepartmentRestricted)
}

func TestCheckAccess_ManagerCannotDeleteSuppliers(t *testing.T) {
	policy := DefaultPolicy()

	assert.False(t, policy.CheckAccess(managerIdentity("Sales"), FeatureSuppliers, ActionDelete, "").Allowed)
	assert.True(t, policy.CheckAccess(managerIdentity("Sales"), FeatureSuppliers, ActionView, "").Allowed)
}

// ===========================================
// EMPLOYEE personal scoping
// ===========================================

func TestCheckAccess_EmployeePersonalOnlyOnRequests(t *testing.T) {
	policy := DefaultPolicy()

	decision := policy.CheckAccess(employeeIdentity("Sales"), FeatureRequests, ActionView, "")

	assert.True(t, decision.Allowed)
	assert.True(t, decision.PersonalOnly())
	assert.False(t, decision.DepartmentRestricted)
}

func TestCheckAccess_EmployeeCannotApprove(t *testing.T) {
	policy := DefaultPolicy()

	decision := policy.CheckAccess(employeeIdentity("Sales"), FeatureRequests, ActionApprove, "")

	assert.False(t, decision.Allowed)
}

func TestCheckAccess_EmployeeCanCreateRequests(t *testing.T) {
	policy := DefaultPolicy()

	decision := policy.CheckAccess(employeeIdentity("Sales"), FeatureRequests, ActionCreate, "Sales")

	assert.True(t, decision.Allowed)
}

// ===========================================
// Alternate policy injection
// ===========================================

func TestCheckAccess_InjectedPolicy(t *testing.T) {
	policy := NewPolicy(map[string]map[Feature]Permission{
		"AUDITOR": {
			FeatureAuditLogs: {CanView: true},
		},
	}, nil)

	id := Identity{ID: uuid.New(), Role: "AUDITOR"}
	assert.True(t, policy.CheckAccess(id, FeatureAuditLogs, ActionView, "").Allowed)
	assert.False(t, policy.CheckAccess(id, FeatureRequests, ActionView, "").Allowed)
}

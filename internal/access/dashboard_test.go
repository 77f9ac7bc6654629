package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supplies-service/internal/models"
)

func TestDefaultDashboard(t *testing.T) {
	assert.Equal(t, "/dashboard/admin", DefaultDashboard(models.RoleAdmin))
	assert.Equal(t, "/dashboard/manager", DefaultDashboard(models.RoleManager))
	assert.Equal(t, "/dashboard/employee", DefaultDashboard(models.RoleEmployee))
	assert.Equal(t, "/dashboard/employee", DefaultDashboard("UNKNOWN"))
}

func TestCanAccessDashboard_AdminHasNoPersonalDashboard(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.CanAccessDashboard(models.RoleAdmin, "admin"))
	assert.True(t, policy.CanAccessDashboard(models.RoleAdmin, "system"))
	assert.True(t, policy.CanAccessDashboard(models.RoleAdmin, "department"))
	assert.False(t, policy.CanAccessDashboard(models.RoleAdmin, "personal"))
}

func TestCanAccessDashboard_ManagerAndEmployee(t *testing.T) {
	policy := DefaultPolicy()

	assert.False(t, policy.CanAccessDashboard(models.RoleManager, "admin"))
	assert.True(t, policy.CanAccessDashboard(models.RoleManager, "department"))
	assert.True(t, policy.CanAccessDashboard(models.RoleManager, "personal"))

	assert.False(t, policy.CanAccessDashboard(models.RoleEmployee, "department"))
	assert.True(t, policy.CanAccessDashboard(models.RoleEmployee, "personal"))
}

func TestCanAccessDashboard_RouteAliases(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.CanAccessDashboard(models.RoleEmployee, "employee"))
	assert.True(t, policy.CanAccessDashboard(models.RoleManager, "manager"))
	assert.False(t, policy.CanAccessDashboard(models.RoleAdmin, "employee"))
}

func TestCanAccessDashboard_UnknownInputsDeny(t *testing.T) {
	policy := DefaultPolicy()

	assert.False(t, policy.CanAccessDashboard(models.RoleAdmin, "superuser"))
	assert.False(t, policy.CanAccessDashboard("UNKNOWN", "personal"))
}

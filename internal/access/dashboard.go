package access

import "supplies-service/internal/models"

// DefaultDashboard returns the landing dashboard path for a role. Unknown
// roles land on the employee dashboard, which the policy table will then
// refuse to serve them.
func DefaultDashboard(role string) string {
	switch role {
	case models.RoleAdmin:
		return "/dashboard/admin"
	case models.RoleManager:
		return "/dashboard/manager"
	default:
		return "/dashboard/employee"
	}
}

// CanAccessDashboard reports whether a role may view a dashboard type. Route
// aliases are accepted: "employee" resolves to the personal dashboard and
// "manager" to the department dashboard. Unknown roles and types deny.
func (p *Policy) CanAccessDashboard(role string, dashboardType string) bool {
	var dash Dashboard
	switch dashboardType {
	case "admin":
		dash = DashboardAdmin
	case "system":
		dash = DashboardSystem
	case "department", "manager":
		dash = DashboardDepartment
	case "personal", "employee":
		dash = DashboardPersonal
	default:
		return false
	}

	flags, ok := p.dashboards[role]
	if !ok {
		return false
	}
	return flags[dash]
}

package access

import "supplies-service/internal/models"

// Feature is a named functional area governed by its own permission set.
type Feature string

// Features known to the policy table.
const (
	FeatureRequests         Feature = "requests"
	FeatureInventory        Feature = "inventory"
	FeatureSuppliers        Feature = "suppliers"
	FeaturePurchaseOrders   Feature = "purchaseOrders"
	FeatureReports          Feature = "reports"
	FeatureQuickReports     Feature = "quickReports"
	FeatureUsers            Feature = "users"
	FeatureDepartments      Feature = "departments"
	FeatureAuditLogs        Feature = "auditLogs"
	FeatureSettings         Feature = "settings"
	FeatureLowStockAlerts   Feature = "lowStockAlerts"
	FeaturePendingApprovals Feature = "pendingApprovals"
)

// Action is one of the permission flags on a feature entry.
type Action string

// Actions evaluable against a feature.
const (
	ActionView    Action = "canView"
	ActionCreate  Action = "canCreate"
	ActionEdit    Action = "canEdit"
	ActionDelete  Action = "canDelete"
	ActionApprove Action = "canApprove"
)

// Dashboard identifies a landing view type.
type Dashboard string

// Dashboard types.
const (
	DashboardAdmin      Dashboard = "admin"
	DashboardSystem     Dashboard = "system"
	DashboardDepartment Dashboard = "department"
	DashboardPersonal   Dashboard = "personal"
)

// Additional restriction tags surfaced to the data-access layer.
const (
	RestrictionPersonalOnly = "personal_only"
)

// Permission holds the flags for one (role, feature) pair.
type Permission struct {
	CanView                bool
	CanCreate              bool
	CanEdit                bool
	CanDelete              bool
	CanApprove             bool
	DepartmentRestricted   bool
	AdditionalRestrictions []string
}

func (p Permission) allows(action Action) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	case ActionApprove:
		return p.CanApprove
	}
	return false
}

// Policy is the immutable role/feature permission matrix. Lookups on roles or
// features it does not know fail closed. Construct with DefaultPolicy (or a
// test double) and inject it; it is never mutated after construction.
type Policy struct {
	features   map[string]map[Feature]Permission
	dashboards map[string]map[Dashboard]bool
}

// DefaultPolicy returns the production permission matrix.
//
// Policy facts worth calling out: ADMIN has global scope and full control
// everywhere but may not create requests and has no personal dashboard.
// MANAGER is department-restricted on operational features. EMPLOYEE sees
// only personal data on request-type features.
func DefaultPolicy() *Policy {
	full := Permission{CanView: true, CanCreate: true, CanEdit: true, CanDelete: true}

	return &Policy{
		features: map[string]map[Feature]Permission{
			models.RoleAdmin: {
				FeatureRequests:         {CanView: true, CanEdit: true, CanDelete: true, CanApprove: true},
				FeatureInventory:        full,
				FeatureSuppliers:        full,
				FeaturePurchaseOrders:   full,
				FeatureReports:          {CanView: true, CanCreate: true, CanEdit: true},
				FeatureQuickReports:     {CanView: true, CanCreate: true},
				FeatureUsers:            full,
				FeatureDepartments:      full,
				FeatureAuditLogs:        {CanView: true},
				FeatureSettings:         {CanView: true, CanEdit: true},
				FeatureLowStockAlerts:   {CanView: true},
				FeaturePendingApprovals: {CanView: true, CanApprove: true},
			},
			models.RoleManager: {
				FeatureRequests:         {CanView: true, CanCreate: true, CanEdit: true, CanDelete: true, CanApprove: true, DepartmentRestricted: true},
				FeatureInventory:        {CanView: true, CanCreate: true, CanEdit: true, DepartmentRestricted: true},
				FeatureSuppliers:        {CanView: true},
				FeaturePurchaseOrders:   {CanView: true, CanCreate: true, CanEdit: true},
				FeatureReports:          {CanView: true, CanCreate: true, DepartmentRestricted: true},
				FeatureQuickReports:     {CanView: true, CanCreate: true, DepartmentRestricted: true},
				FeatureUsers:            {CanView: true},
				FeatureDepartments:      {CanView: true},
				FeatureLowStockAlerts:   {CanView: true, DepartmentRestricted: true},
				FeaturePendingApprovals: {CanView: true, CanApprove: true, DepartmentRestricted: true},
			},
			models.RoleEmployee: {
				FeatureRequests: {CanView: true, CanCreate: true, CanEdit: true,
					AdditionalRestrictions: []string{RestrictionPersonalOnly}},
				FeatureInventory: {CanView: true},
				FeatureQuickReports: {CanView: true,
					AdditionalRestrictions: []string{RestrictionPersonalOnly}},
			},
		},
		dashboards: map[string]map[Dashboard]bool{
			models.RoleAdmin: {
				DashboardAdmin:      true,
				DashboardSystem:     true,
				DashboardDepartment: true,
				DashboardPersonal:   false,
			},
			models.RoleManager: {
				DashboardAdmin:      false,
				DashboardSystem:     false,
				DashboardDepartment: true,
				DashboardPersonal:   true,
			},
			models.RoleEmployee: {
				DashboardAdmin:      false,
				DashboardSystem:     false,
				DashboardDepartment: false,
				DashboardPersonal:   true,
			},
		},
	}
}

// NewPolicy builds a policy from explicit tables. Intended for tests that
// need an alternate matrix.
func NewPolicy(features map[string]map[Feature]Permission, dashboards map[string]map[Dashboard]bool) *Policy {
	return &Policy{features: features, dashboards: dashboards}
}

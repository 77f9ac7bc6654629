package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogEntry is an append-only record of a state-changing action. Entries
// are never updated or deleted.
type AuditLogEntry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Action      string         `gorm:"type:varchar(30);not null;index" json:"action"`
	Entity      string         `gorm:"type:varchar(50);not null;index" json:"entity"`
	EntityID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"entityId"`
	PerformedBy uuid.UUID      `gorm:"type:uuid;not null;index" json:"performedBy"`
	Details     string         `gorm:"type:text" json:"details,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName returns the table name for AuditLogEntry
func (AuditLogEntry) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionCreate       = "CREATE"
	AuditActionUpdate       = "UPDATE"
	AuditActionDelete       = "DELETE"
	AuditActionApprove      = "APPROVE"
	AuditActionReject       = "REJECT"
	AuditActionStatusChange = "STATUS_CHANGE"
	AuditActionReceive      = "RECEIVE"
)

// Audit entity type names
const (
	EntityRequest       = "Request"
	EntityUser          = "User"
	EntityItem          = "Item"
	EntitySupplier      = "Supplier"
	EntityPurchaseOrder = "PurchaseOrder"
	EntityDepartment    = "Department"
)

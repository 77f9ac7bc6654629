package models

import (
	"time"

	"github.com/google/uuid"
)

// Approval is one link in a request's approval chain. Levels are unique per
// request and must resolve in ascending order: level N may only be decided
// while every level below it is APPROVED and level N itself is PENDING.
type Approval struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_approvals_request_level,unique" json:"requestId"`
	ApproverID uuid.UUID  `gorm:"type:uuid;not null;index" json:"approverId"`
	Level      int        `gorm:"not null;index:idx_approvals_request_level,unique" json:"level"`
	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Comments   string     `gorm:"type:text" json:"comments,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Approver *User `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

// TableName returns the table name for Approval
func (Approval) TableName() string {
	return "approvals"
}

// Approval status constants
const (
	ApprovalStatusPending  = "PENDING"
	ApprovalStatusApproved = "APPROVED"
	ApprovalStatusRejected = "REJECTED"
)

// Decision values accepted by the workflow engine.
const (
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request is a supply request moving through the approval workflow.
type Request struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Department  string          `gorm:"type:varchar(100);not null;index" json:"department"`
	Priority    string          `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Status      string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	RequesterID uuid.UUID       `gorm:"type:uuid;not null;index" json:"requesterId"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"totalAmount"`
	Version     int             `gorm:"not null;default:1" json:"version"` // Optimistic locking
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	Requester *User         `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Items     []RequestItem `gorm:"foreignKey:RequestID" json:"items,omitempty"`
	Approvals []Approval    `gorm:"foreignKey:RequestID" json:"approvals,omitempty"`
}

// TableName returns the table name for Request
func (Request) TableName() string {
	return "requests"
}

// Request status constants
const (
	RequestStatusPending    = "PENDING"
	RequestStatusApproved   = "APPROVED"
	RequestStatusRejected   = "REJECTED"
	RequestStatusInProgress = "IN_PROGRESS"
	RequestStatusCompleted  = "COMPLETED"
)

// Priority constants
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// IsTerminal returns true once the approval chain can no longer act on the
// request. IN_PROGRESS and COMPLETED are fulfillment states reached after
// approval, so anything except PENDING is terminal for the chain.
func (r *Request) IsTerminal() bool {
	return r.Status != RequestStatusPending
}

// RecomputeTotal sets TotalAmount to the sum of line totals. Must be called
// after any item mutation.
func (r *Request) RecomputeTotal() {
	total := decimal.Zero
	for i := range r.Items {
		total = total.Add(r.Items[i].TotalPrice)
	}
	r.TotalAmount = total
}

// ValidPriority reports whether p is one of the closed priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RequestItem is one line of a supply request.
type RequestItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"requestId"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"itemId"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unitPrice"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"totalPrice"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName returns the table name for RequestItem
func (RequestItem) TableName() string {
	return "request_items"
}

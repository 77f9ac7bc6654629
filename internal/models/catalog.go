package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is an inventory stock item that requests and purchase orders reference.
type Item struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Reference    string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"reference"`
	Category     string          `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Unit         string          `gorm:"type:varchar(50)" json:"unit,omitempty"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unitPrice"`
	CurrentStock int             `gorm:"not null;default:0" json:"currentStock"`
	MinStock     int             `gorm:"not null;default:0" json:"minStock"`
	Department   string          `gorm:"type:varchar(100);index" json:"department,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for Item
func (Item) TableName() string {
	return "items"
}

// IsLowStock reports whether the item has fallen below its minimum level.
func (i *Item) IsLowStock() bool {
	return i.CurrentStock < i.MinStock
}

// Supplier is a vendor that purchase orders are placed with.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone         string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address       string    `gorm:"type:text" json:"address,omitempty"`
	ContactPerson string    `gorm:"type:varchar(255)" json:"contactPerson,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}

// PurchaseOrder is an order placed with a supplier to restock inventory.
type PurchaseOrder struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderNumber      string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"orderNumber"`
	SupplierID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplierId"`
	Status           string          `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"totalAmount"`
	OrderedBy        uuid.UUID       `gorm:"type:uuid;not null" json:"orderedBy"`
	ExpectedDelivery *time.Time      `json:"expectedDelivery,omitempty"`
	ReceivedAt       *time.Time      `json:"receivedAt,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	Supplier *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// TableName returns the table name for PurchaseOrder
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// Purchase order status constants
const (
	POStatusDraft     = "DRAFT"
	POStatusSent      = "SENT"
	POStatusConfirmed = "CONFIRMED"
	POStatusReceived  = "RECEIVED"
	POStatusCancelled = "CANCELLED"
)

// PurchaseOrderItem is one line of a purchase order.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchaseOrderId"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"itemId"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unitPrice"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"totalPrice"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName returns the table name for PurchaseOrderItem
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

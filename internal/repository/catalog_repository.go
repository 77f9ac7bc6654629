package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supplies-service/internal/models"
)

// CatalogRepositoryInterface abstracts inventory, supplier and purchase-order
// persistence.
type CatalogRepositoryInterface interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListItems(ctx context.Context, department string) ([]models.Item, error)
	ListLowStockItems(ctx context.Context, department string) ([]models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	GetSupplierByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier *models.Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error

	CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error
	GetPurchaseOrderByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, status string) ([]models.PurchaseOrder, error)
	UpdatePurchaseOrderStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus string, receivedAt *time.Time) error
	ReceivePurchaseOrder(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
}

// CatalogRepository handles database operations for items, suppliers and
// purchase orders.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// --- Item Methods ---

// CreateItem creates an inventory item
func (r *CatalogRepository) CreateItem(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetItemByID retrieves an item by ID
func (r *CatalogRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListItems retrieves items, optionally scoped to a department.
func (r *CatalogRepository) ListItems(ctx context.Context, department string) ([]models.Item, error) {
	var items []models.Item
	query := r.db.WithContext(ctx).Order("name ASC")
	if department != "" {
		query = query.Where("department = ?", department)
	}
	err := query.Find(&items).Error
	return items, err
}

// ListLowStockItems retrieves items below their minimum stock level.
func (r *CatalogRepository) ListLowStockItems(ctx context.Context, department string) ([]models.Item, error) {
	var items []models.Item
	query := r.db.WithContext(ctx).
		Where("current_stock < min_stock").
		Order("name ASC")
	if department != "" {
		query = query.Where("department = ?", department)
	}
	err := query.Find(&items).Error
	return items, err
}

// UpdateItem persists item fields.
func (r *CatalogRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	result := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":          item.Name,
			"reference":     item.Reference,
			"category":      item.Category,
			"unit":          item.Unit,
			"unit_price":    item.UnitPrice,
			"current_stock": item.CurrentStock,
			"min_stock":     item.MinStock,
			"department":    item.Department,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an inventory item.
func (r *CatalogRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Supplier Methods ---

// CreateSupplier creates a supplier
func (r *CatalogRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

// GetSupplierByID retrieves a supplier by ID
func (r *CatalogRepository) GetSupplierByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// ListSuppliers retrieves all suppliers by name.
func (r *CatalogRepository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

// UpdateSupplier persists supplier fields.
func (r *CatalogRepository) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	result := r.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("id = ?", supplier.ID).
		Updates(map[string]interface{}{
			"name":           supplier.Name,
			"email":          supplier.Email,
			"phone":          supplier.Phone,
			"address":        supplier.Address,
			"contact_person": supplier.ContactPerson,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSupplier removes a supplier.
func (r *CatalogRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Supplier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Purchase Order Methods ---

// CreatePurchaseOrder creates a purchase order with its items.
func (r *CatalogRepository) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

// GetPurchaseOrderByID retrieves a purchase order with items and supplier.
func (r *CatalogRepository) GetPurchaseOrderByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// ListPurchaseOrders retrieves purchase orders, optionally by status.
func (r *CatalogRepository) ListPurchaseOrders(ctx context.Context, status string) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	query := r.db.WithContext(ctx).
		Preload("Supplier").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&orders).Error
	return orders, err
}

// UpdatePurchaseOrderStatus moves a purchase order between statuses. The
// fromStatus guard makes the transition race-safe.
func (r *CatalogRepository) UpdatePurchaseOrderStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus string, receivedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     toStatus,
		"updated_at": time.Now(),
	}
	if receivedAt != nil {
		updates["received_at"] = receivedAt
	}
	result := r.db.WithContext(ctx).Model(&models.PurchaseOrder{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// ReceivePurchaseOrder marks an order received and increments stock for every
// line item, atomically.
func (r *CatalogRepository) ReceivePurchaseOrder(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	var received *models.PurchaseOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.Preload("Items").Where("id = ?", id).First(&po).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		result := tx.Model(&models.PurchaseOrder{}).
			Where("id = ? AND status IN ?", id, []string{models.POStatusSent, models.POStatusConfirmed}).
			Updates(map[string]interface{}{
				"status":      models.POStatusReceived,
				"received_at": now,
				"updated_at":  now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}

		for _, line := range po.Items {
			if err := tx.Model(&models.Item{}).
				Where("id = ?", line.ItemID).
				UpdateColumn("current_stock", gorm.Expr("current_stock + ?", line.Quantity)).Error; err != nil {
				return err
			}
		}

		po.Status = models.POStatusReceived
		po.ReceivedAt = &now
		received = &po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

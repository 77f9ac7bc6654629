package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"supplies-service/internal/access"
	"supplies-service/internal/models"
	"supplies-service/internal/repository"
)

var ErrItemNotFound = errors.New("item not found")

// InventoryService manages the stock item catalog.
type InventoryService struct {
	catalog repository.CatalogRepositoryInterface
	policy  *access.Policy
	audit   *AuditRecorder
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(catalog repository.CatalogRepositoryInterface, policy *access.Policy, audit *AuditRecorder) *InventoryService {
	return &InventoryService{catalog: catalog, policy: policy, audit: audit}
}

// ItemInput represents input for creating or updating a stock item
type ItemInput struct {
	Name         string          `json:"name" binding:"required"`
	Reference    string          `json:"reference" binding:"required"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CurrentStock int             `json:"currentStock"`
	MinStock     int             `json:"minStock"`
	Department   string          `json:"department,omitempty"`
}

// CreateItem adds a stock item to the catalog.
func (s *InventoryService) CreateItem(ctx context.Context, id access.Identity, input ItemInput) (*models.Item, error) {
	decision := s.policy.CheckAccess(id, access.FeatureInventory, access.ActionCreate, input.Department)
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	if input.UnitPrice.IsNegative() || input.CurrentStock < 0 || input.MinStock < 0 {
		return nil, fmt.Errorf("%w: price and stock levels must be non-negative", ErrInvalidInput)
	}

	item := &models.Item{
		Name:         input.Name,
		Reference:    input.Reference,
		Category:     input.Category,
		Unit:         input.Unit,
		UnitPrice:    input.UnitPrice,
		CurrentStock: input.CurrentStock,
		MinStock:     input.MinStock,
		Department:   input.Department,
	}
	if err := s.catalog.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionCreate, models.EntityItem, item.ID, id.ID,
		fmt.Sprintf("Created item %q (%s)", item.Name, item.Reference), nil)

	return item, nil
}

// GetItem retrieves a stock item.
func (s *InventoryService) GetItem(ctx context.Context, id access.Identity, itemID uuid.UUID) (*models.Item, error) {
	decision := s.policy.CheckAccess(id, access.FeatureInventory, access.ActionView, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	item, err := s.catalog.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if decision.DepartmentRestricted && item.Department != "" && item.Department != id.Department {
		return nil, ErrForbidden
	}
	return item, nil
}

// ListItems retrieves catalog items within the caller's department scope.
func (s *InventoryService) ListItems(ctx context.Context, id access.Identity, department string) ([]models.Item, error) {
	decision := s.policy.CheckAccess(id, access.FeatureInventory, access.ActionView, department)
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	if decision.DepartmentRestricted && department == "" {
		department = id.Department
	}
	return s.catalog.ListItems(ctx, department)
}

// ListLowStockItems retrieves items below their minimum stock level.
func (s *InventoryService) ListLowStockItems(ctx context.Context, id access.Identity, department string) ([]models.Item, error) {
	decision := s.policy.CheckAccess(id, access.FeatureLowStockAlerts, access.ActionView, department)
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	if decision.DepartmentRestricted && department == "" {
		department = id.Department
	}
	return s.catalog.ListLowStockItems(ctx, department)
}

// UpdateItem replaces a stock item's fields.
func (s *InventoryService) UpdateItem(ctx context.Context, id access.Identity, itemID uuid.UUID, input ItemInput) (*models.Item, error) {
	item, err := s.catalog.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	decision := s.policy.CheckAccess(id, access.FeatureInventory, access.ActionEdit, item.Department)
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	if input.UnitPrice.IsNegative() || input.CurrentStock < 0 || input.MinStock < 0 {
		return nil, fmt.Errorf("%w: price and stock levels must be non-negative", ErrInvalidInput)
	}

	item.Name = input.Name
	item.Reference = input.Reference
	item.Category = input.Category
	item.Unit = input.Unit
	item.UnitPrice = input.UnitPrice
	item.CurrentStock = input.CurrentStock
	item.MinStock = input.MinStock
	item.Department = input.Department

	if err := s.catalog.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionUpdate, models.EntityItem, item.ID, id.ID,
		fmt.Sprintf("Updated item %q", item.Name),
		map[string]interface{}{"currentStock": item.CurrentStock, "minStock": item.MinStock})

	return item, nil
}

// DeleteItem removes a stock item. Admin-only per the policy table.
func (s *InventoryService) DeleteItem(ctx context.Context, id access.Identity, itemID uuid.UUID) error {
	decision := s.policy.CheckAccess(id, access.FeatureInventory, access.ActionDelete, "")
	if !decision.Allowed {
		return ErrForbidden
	}

	if err := s.catalog.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	s.audit.Record(ctx, models.AuditActionDelete, models.EntityItem, itemID, id.ID, "Deleted item", nil)
	return nil
}

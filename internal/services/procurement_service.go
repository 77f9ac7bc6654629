package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"supplies-service/internal/access"
	"supplies-service/internal/models"
	"supplies-service/internal/repository"
)

var (
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
)

// ProcurementService manages suppliers and purchase orders, including the
// goods-receipt flow that restocks inventory.
type ProcurementService struct {
	catalog repository.CatalogRepositoryInterface
	policy  *access.Policy
	audit   *AuditRecorder
}

// NewProcurementService creates a new ProcurementService
func NewProcurementService(catalog repository.CatalogRepositoryInterface, policy *access.Policy, audit *AuditRecorder) *ProcurementService {
	return &ProcurementService{catalog: catalog, policy: policy, audit: audit}
}

// SupplierInput represents input for creating or updating a supplier
type SupplierInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
}

// PurchaseOrderItemInput is one line of a purchase order.
type PurchaseOrderItemInput struct {
	ItemID    string          `json:"itemId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreatePurchaseOrderInput represents input for placing a purchase order
type CreatePurchaseOrderInput struct {
	SupplierID       string                   `json:"supplierId" binding:"required"`
	ExpectedDelivery *time.Time               `json:"expectedDelivery,omitempty"`
	Items            []PurchaseOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateSupplier registers a vendor.
func (s *ProcurementService) CreateSupplier(ctx context.Context, id access.Identity, input SupplierInput) (*models.Supplier, error) {
	decision := s.policy.CheckAccess(id, access.FeatureSuppliers, access.ActionCreate, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	supplier := &models.Supplier{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		ContactPerson: input.ContactPerson,
	}
	if err := s.catalog.CreateSupplier(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionCreate, models.EntitySupplier, supplier.ID, id.ID,
		fmt.Sprintf("Created supplier %q", supplier.Name), nil)

	return supplier, nil
}

// ListSuppliers retrieves all suppliers.
func (s *ProcurementService) ListSuppliers(ctx context.Context, id access.Identity) ([]models.Supplier, error) {
	decision := s.policy.CheckAccess(id, access.FeatureSuppliers, access.ActionView, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	return s.catalog.ListSuppliers(ctx)
}

// UpdateSupplier replaces a supplier's contact fields.
func (s *ProcurementService) UpdateSupplier(ctx context.Context, id access.Identity, supplierID uuid.UUID, input SupplierInput) (*models.Supplier, error) {
	decision := s.policy.CheckAccess(id, access.FeatureSuppliers, access.ActionEdit, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	supplier, err := s.catalog.GetSupplierByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	supplier.Name = input.Name
	supplier.Email = input.Email
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	supplier.ContactPerson = input.ContactPerson

	if err := s.catalog.UpdateSupplier(ctx, supplier); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionUpdate, models.EntitySupplier, supplier.ID, id.ID,
		fmt.Sprintf("Updated supplier %q", supplier.Name), nil)

	return supplier, nil
}

// DeleteSupplier removes a vendor. Admin-only per the policy table.
func (s *ProcurementService) DeleteSupplier(ctx context.Context, id access.Identity, supplierID uuid.UUID) error {
	decision := s.policy.CheckAccess(id, access.FeatureSuppliers, access.ActionDelete, "")
	if !decision.Allowed {
		return ErrForbidden
	}

	if err := s.catalog.DeleteSupplier(ctx, supplierID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}

	s.audit.Record(ctx, models.AuditActionDelete, models.EntitySupplier, supplierID, id.ID, "Deleted supplier", nil)
	return nil
}

// CreatePurchaseOrder places a DRAFT order with a supplier.
func (s *ProcurementService) CreatePurchaseOrder(ctx context.Context, id access.Identity, input CreatePurchaseOrderInput) (*models.PurchaseOrder, error) {
	decision := s.policy.CheckAccess(id, access.FeaturePurchaseOrders, access.ActionCreate, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	supplierID, err := uuid.Parse(input.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supplier id", ErrInvalidInput)
	}
	if _, err := s.catalog.GetSupplierByID(ctx, supplierID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	total := decimal.Zero
	lines := make([]models.PurchaseOrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		itemID, err := uuid.Parse(in.ItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid item id %q", ErrInvalidInput, in.ItemID)
		}
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}

		unitPrice := in.UnitPrice
		if unitPrice.IsZero() {
			catalogItem, err := s.catalog.GetItemByID(ctx, itemID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, fmt.Errorf("%w: unknown item %s", ErrInvalidInput, itemID)
				}
				return nil, err
			}
			unitPrice = catalogItem.UnitPrice
		}
		if unitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must be non-negative", ErrInvalidInput)
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, models.PurchaseOrderItem{
			ItemID:     itemID,
			Quantity:   in.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: lineTotal,
		})
	}

	po := &models.PurchaseOrder{
		OrderNumber:      generateOrderNumber(),
		SupplierID:       supplierID,
		Status:           models.POStatusDraft,
		TotalAmount:      total,
		OrderedBy:        id.ID,
		ExpectedDelivery: input.ExpectedDelivery,
		Items:            lines,
	}
	if err := s.catalog.CreatePurchaseOrder(ctx, po); err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionCreate, models.EntityPurchaseOrder, po.ID, id.ID,
		fmt.Sprintf("Created purchase order %s", po.OrderNumber),
		map[string]interface{}{"supplierId": supplierID, "totalAmount": total.String()})

	return po, nil
}

// GetPurchaseOrder retrieves an order with its supplier and lines.
func (s *ProcurementService) GetPurchaseOrder(ctx context.Context, id access.Identity, poID uuid.UUID) (*models.PurchaseOrder, error) {
	decision := s.policy.CheckAccess(id, access.FeaturePurchaseOrders, access.ActionView, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	po, err := s.catalog.GetPurchaseOrderByID(ctx, poID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseOrderNotFound
		}
		return nil, err
	}
	return po, nil
}

// ListPurchaseOrders retrieves orders, optionally filtered by status.
func (s *ProcurementService) ListPurchaseOrders(ctx context.Context, id access.Identity, status string) ([]models.PurchaseOrder, error) {
	decision := s.policy.CheckAccess(id, access.FeaturePurchaseOrders, access.ActionView, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	return s.catalog.ListPurchaseOrders(ctx, status)
}

// poTransitions lists the allowed forward moves before receipt.
var poTransitions = map[string]string{
	models.POStatusDraft: models.POStatusSent,
	models.POStatusSent:  models.POStatusConfirmed,
}

// AdvancePurchaseOrder moves an order one step forward (DRAFT→SENT→CONFIRMED).
func (s *ProcurementService) AdvancePurchaseOrder(ctx context.Context, id access.Identity, poID uuid.UUID) (*models.PurchaseOrder, error) {
	decision := s.policy.CheckAccess(id, access.FeaturePurchaseOrders, access.ActionEdit, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	po, err := s.catalog.GetPurchaseOrderByID(ctx, poID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseOrderNotFound
		}
		return nil, err
	}

	next, ok := poTransitions[po.Status]
	if !ok {
		return nil, ErrInvalidTransition
	}
	if err := s.catalog.UpdatePurchaseOrderStatus(ctx, poID, po.Status, next, nil); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionStatusChange, models.EntityPurchaseOrder, po.ID, id.ID,
		fmt.Sprintf("Purchase order %s: %s -> %s", po.OrderNumber, po.Status, next),
		map[string]interface{}{"from": po.Status, "to": next})

	po.Status = next
	return po, nil
}

// CancelPurchaseOrder cancels an order that has not been received.
func (s *ProcurementService) CancelPurchaseOrder(ctx context.Context, id access.Identity, poID uuid.UUID) error {
	decision := s.policy.CheckAccess(id, access.FeaturePurchaseOrders, access.ActionEdit, "")
	if !decision.Allowed {
		return ErrForbidden
	}

	po, err := s.catalog.GetPurchaseOrderByID(ctx, poID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPurchaseOrderNotFound
		}
		return err
	}
	if po.Status == models.POStatusReceived || po.Status == models.POStatusCancelled {
		return ErrInvalidTransition
	}

	if err := s.catalog.UpdatePurchaseOrderStatus(ctx, poID, po.Status, models.POStatusCancelled, nil); err != nil {
		return err
	}

	s.audit.Record(ctx, models.AuditActionStatusChange, models.EntityPurchaseOrder, po.ID, id.ID,
		fmt.Sprintf("Cancelled purchase order %s", po.OrderNumber), nil)

	return nil
}

// ReceivePurchaseOrder marks a SENT or CONFIRMED order as received and
// increments stock for each line, atomically.
func (s *ProcurementService) ReceivePurchaseOrder(ctx context.Context, id access.Identity, poID uuid.UUID) (*models.PurchaseOrder, error) {
	decision := s.policy.CheckAccess(id, access.FeaturePurchaseOrders, access.ActionEdit, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	po, err := s.catalog.ReceivePurchaseOrder(ctx, poID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseOrderNotFound
		}
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionReceive, models.EntityPurchaseOrder, po.ID, id.ID,
		fmt.Sprintf("Received purchase order %s", po.OrderNumber),
		map[string]interface{}{"lineCount": len(po.Items)})

	return po, nil
}

// generateOrderNumber builds a unique, human-readable PO reference.
func generateOrderNumber() string {
	return fmt.Sprintf("PO-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}

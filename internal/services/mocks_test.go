package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"supplies-service/internal/models"
	"supplies-service/internal/repository"
)

// MockRequestRepository is a mock implementation of RequestRepositoryInterface
type MockRequestRepository struct {
	mock.Mock
}

var _ repository.RequestRepositoryInterface = (*MockRequestRepository)(nil)

func (m *MockRequestRepository) CreateRequest(ctx context.Context, request *models.Request) error {
	args := m.Called(ctx, request)
	if args.Error(0) == nil && request.ID == uuid.Nil {
		request.ID = uuid.New()
		request.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockRequestRepository) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestRepository) ListRequests(ctx context.Context, filter repository.RequestFilter) ([]models.Request, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Request), args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestRepository) ListPendingApprovals(ctx context.Context, approverID uuid.UUID, limit, offset int) ([]models.Request, int64, error) {
	args := m.Called(ctx, approverID, limit, offset)
	return args.Get(0).([]models.Request), args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestRepository) UpdateRequestStatus(ctx context.Context, request *models.Request, newStatus string) error {
	args := m.Called(ctx, request, newStatus)
	if args.Error(0) == nil {
		request.Status = newStatus
		request.Version++
	}
	return args.Error(0)
}

func (m *MockRequestRepository) UpdateRequestWithLock(ctx context.Context, request *models.Request) error {
	args := m.Called(ctx, request)
	if args.Error(0) == nil {
		request.Version++
	}
	return args.Error(0)
}

func (m *MockRequestRepository) ReplaceRequestItems(ctx context.Context, requestID uuid.UUID, items []models.RequestItem) error {
	args := m.Called(ctx, requestID, items)
	return args.Error(0)
}

func (m *MockRequestRepository) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequestRepository) CreateApproval(ctx context.Context, approval *models.Approval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockRequestRepository) UpdateApproval(ctx context.Context, approval *models.Approval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

// WithTransaction executes the callback against the mock itself, standing in
// for a real transaction.
func (m *MockRequestRepository) WithTransaction(ctx context.Context, fn func(txRepo repository.RequestRepositoryInterface) error) error {
	return fn(m)
}

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FirstActiveManager(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Department), args.Error(1)
}

func (m *MockUserRepository) CreateDepartment(ctx context.Context, dept *models.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateDepartment(ctx context.Context, dept *models.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

// MockCatalogRepository is a mock implementation of CatalogRepositoryInterface
type MockCatalogRepository struct {
	mock.Mock
}

var _ repository.CatalogRepositoryInterface = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) CreateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil && item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCatalogRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockCatalogRepository) ListItems(ctx context.Context, department string) ([]models.Item, error) {
	args := m.Called(ctx, department)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockCatalogRepository) ListLowStockItems(ctx context.Context, department string) ([]models.Item, error) {
	args := m.Called(ctx, department)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockCatalogRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	if args.Error(0) == nil && supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCatalogRepository) GetSupplierByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockCatalogRepository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Supplier), args.Error(1)
}

func (m *MockCatalogRepository) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	args := m.Called(ctx, po)
	if args.Error(0) == nil && po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCatalogRepository) GetPurchaseOrderByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockCatalogRepository) ListPurchaseOrders(ctx context.Context, status string) ([]models.PurchaseOrder, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.PurchaseOrder), args.Error(1)
}

func (m *MockCatalogRepository) UpdatePurchaseOrderStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus string, receivedAt *time.Time) error {
	args := m.Called(ctx, id, fromStatus, toStatus, receivedAt)
	return args.Error(0)
}

func (m *MockCatalogRepository) ReceivePurchaseOrder(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

// MockAuditRepository is a mock implementation of AuditRepositoryInterface
type MockAuditRepository struct {
	mock.Mock
}

var _ repository.AuditRepositoryInterface = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditLogs(ctx context.Context, filter repository.AuditFilter) ([]models.AuditLogEntry, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.AuditLogEntry), args.Get(1).(int64), args.Error(2)
}

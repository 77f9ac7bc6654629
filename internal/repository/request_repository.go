package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supplies-service/internal/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict - record was modified by another request")
)

// RequestFilter narrows request listings. Zero values mean "no filter".
type RequestFilter struct {
	Status      string
	Priority    string
	Department  string
	RequesterID *uuid.UUID
	Search      string
	Limit       int
	Offset      int
}

// RequestRepositoryInterface abstracts request persistence for the workflow
// engine and its tests.
type RequestRepositoryInterface interface {
	CreateRequest(ctx context.Context, request *models.Request) error
	GetRequestByID(ctx context.Context, id uuid.UUID) (*models.Request, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]models.Request, int64, error)
	ListPendingApprovals(ctx context.Context, approverID uuid.UUID, limit, offset int) ([]models.Request, int64, error)
	UpdateRequestStatus(ctx context.Context, request *models.Request, newStatus string) error
	UpdateRequestWithLock(ctx context.Context, request *models.Request) error
	ReplaceRequestItems(ctx context.Context, requestID uuid.UUID, items []models.RequestItem) error
	DeleteRequest(ctx context.Context, id uuid.UUID) error
	CreateApproval(ctx context.Context, approval *models.Approval) error
	UpdateApproval(ctx context.Context, approval *models.Approval) error
	WithTransaction(ctx context.Context, fn func(txRepo RequestRepositoryInterface) error) error
}

// RequestRepository handles database operations for requests, their items
// and their approval chains.
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateRequest creates a request together with its items and approvals.
func (r *RequestRepository) CreateRequest(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetRequestByID retrieves a request with its items and ordered approval chain.
func (r *RequestRepository) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("level ASC")
		}).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// ListRequests retrieves requests matching the filter, newest first.
func (r *RequestRepository) ListRequests(ctx context.Context, filter RequestFilter) ([]models.Request, int64, error) {
	var requests []models.Request
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Request{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("level ASC")
		}).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&requests).Error

	return requests, total, err
}

// ListPendingApprovals retrieves PENDING requests whose next actionable level
// is assigned to the approver, newest first. The assignment filter runs in SQL
// so limit/offset paginate the queue itself and total is the true queue size.
func (r *RequestRepository) ListPendingApprovals(ctx context.Context, approverID uuid.UUID, limit, offset int) ([]models.Request, int64, error) {
	var requests []models.Request
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Request{}).
		Joins("JOIN approvals ON approvals.request_id = requests.id").
		Where("requests.status = ?", models.RequestStatusPending).
		Where("approvals.approver_id = ? AND approvals.status = ?", approverID, models.ApprovalStatusPending).
		Where(`NOT EXISTS (
			SELECT 1 FROM approvals lower_levels
			WHERE lower_levels.request_id = requests.id
			AND lower_levels.status = ?
			AND lower_levels.level < approvals.level)`, models.ApprovalStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("level ASC")
		}).
		Order("requests.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error

	return requests, total, err
}

// UpdateRequestStatus updates request status with optimistic locking.
func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, request *models.Request, newStatus string) error {
	oldVersion := request.Version

	result := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND version = ?", request.ID, oldVersion).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"version":    oldVersion + 1,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	request.Status = newStatus
	request.Version = oldVersion + 1
	return nil
}

// UpdateRequestWithLock persists scalar request fields with optimistic locking.
func (r *RequestRepository) UpdateRequestWithLock(ctx context.Context, request *models.Request) error {
	oldVersion := request.Version

	result := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND version = ?", request.ID, oldVersion).
		Updates(map[string]interface{}{
			"title":        request.Title,
			"description":  request.Description,
			"department":   request.Department,
			"priority":     request.Priority,
			"total_amount": request.TotalAmount,
			"version":      oldVersion + 1,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	request.Version = oldVersion + 1
	return nil
}

// ReplaceRequestItems swaps the full item set of a request.
func (r *RequestRepository) ReplaceRequestItems(ctx context.Context, requestID uuid.UUID, items []models.RequestItem) error {
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Delete(&models.RequestItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].RequestID = requestID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// DeleteRequest removes a request with its items and approvals.
func (r *RequestRepository) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("request_id = ?", id).Delete(&models.RequestItem{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("request_id = ?", id).Delete(&models.Approval{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Request{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateApproval appends a link to a request's approval chain.
func (r *RequestRepository) CreateApproval(ctx context.Context, approval *models.Approval) error {
	return r.db.WithContext(ctx).Create(approval).Error
}

// UpdateApproval persists an approver's decision on a chain link.
func (r *RequestRepository) UpdateApproval(ctx context.Context, approval *models.Approval) error {
	result := r.db.WithContext(ctx).Model(&models.Approval{}).
		Where("id = ?", approval.ID).
		Updates(map[string]interface{}{
			"status":     approval.Status,
			"comments":   approval.Comments,
			"decided_at": approval.DecidedAt,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// WithTransaction runs fn against a transactional repository. The multi-step
// approval transition must be serialized per request, so callers wrap the
// read-decide-write sequence here.
func (r *RequestRepository) WithTransaction(ctx context.Context, fn func(txRepo RequestRepositoryInterface) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RequestRepository{db: tx})
	})
}

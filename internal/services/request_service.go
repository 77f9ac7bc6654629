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
	ErrForbidden             = errors.New("forbidden by access policy")
	ErrRequestNotFound       = errors.New("request not found")
	ErrRequestAlreadyDecided = errors.New("request has already been decided")
	ErrNotAssignedApprover   = errors.New("user has no pending approval on this request")
	ErrApprovalOutOfOrder    = errors.New("a lower approval level is still pending")
	ErrCommentsRequired      = errors.New("comments are required when rejecting")
	ErrInvalidDecision       = errors.New("decision must be APPROVED or REJECTED")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidTransition     = errors.New("status transition not allowed")
)

// RequestService drives supply requests through their approval chain.
type RequestService struct {
	repo    repository.RequestRepositoryInterface
	users   repository.UserRepositoryInterface
	catalog repository.CatalogRepositoryInterface
	policy  *access.Policy
	audit   *AuditRecorder
}

// NewRequestService creates a new RequestService
func NewRequestService(repo repository.RequestRepositoryInterface, users repository.UserRepositoryInterface, catalog repository.CatalogRepositoryInterface, policy *access.Policy, audit *AuditRecorder) *RequestService {
	return &RequestService{
		repo:    repo,
		users:   users,
		catalog: catalog,
		policy:  policy,
		audit:   audit,
	}
}

// RequestItemInput is one requested line item.
type RequestItemInput struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Notes    string `json:"notes,omitempty"`
}

// CreateRequestInput represents input for creating a supply request
type CreateRequestInput struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description,omitempty"`
	Department  string             `json:"department,omitempty"`
	Priority    string             `json:"priority,omitempty"`
	Items       []RequestItemInput `json:"items" binding:"required,min=1,dive"`
}

// SubmitApprovalInput represents an approver's decision on a request
type SubmitApprovalInput struct {
	Decision string `json:"decision" binding:"required"`
	Comments string `json:"comments,omitempty"`
}

// UpdateRequestInput patches a PENDING request. Nil fields are left unchanged;
// a non-nil Items slice replaces the full item set.
type UpdateRequestInput struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Priority    *string            `json:"priority,omitempty"`
	Items       []RequestItemInput `json:"items,omitempty"`
}

// buildItems resolves catalog items and prices each line. Line totals use the
// catalog unit price at request time, not at approval time.
func (s *RequestService) buildItems(ctx context.Context, inputs []RequestItemInput) ([]models.RequestItem, error) {
	items := make([]models.RequestItem, 0, len(inputs))
	for _, in := range inputs {
		itemID, err := uuid.Parse(in.ItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid item id %q", ErrInvalidInput, in.ItemID)
		}
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}

		catalogItem, err := s.catalog.GetItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown item %s", ErrInvalidInput, itemID)
			}
			return nil, err
		}

		qty := decimal.NewFromInt(int64(in.Quantity))
		items = append(items, models.RequestItem{
			ItemID:     itemID,
			Quantity:   in.Quantity,
			UnitPrice:  catalogItem.UnitPrice,
			TotalPrice: catalogItem.UnitPrice.Mul(qty),
			Notes:      in.Notes,
		})
	}
	return items, nil
}

// CreateRequest creates a PENDING request with its level-1 approval.
//
// The level-1 approver is the earliest-created active manager. When no active
// manager exists the request is still created, with an empty approval chain.
func (s *RequestService) CreateRequest(ctx context.Context, id access.Identity, input CreateRequestInput) (*models.Request, error) {
	department := input.Department
	if department == "" {
		department = id.Department
	}

	decision := s.policy.CheckAccess(id, access.FeatureRequests, access.ActionCreate, department)
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if department == "" {
		return nil, fmt.Errorf("%w: department is required", ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	request := &models.Request{
		Title:       input.Title,
		Description: input.Description,
		Department:  department,
		Priority:    priority,
		Status:      models.RequestStatusPending,
		RequesterID: id.ID,
		Items:       items,
		Version:     1,
	}
	request.RecomputeTotal()

	manager, err := s.users.FirstActiveManager(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if manager != nil {
		request.Approvals = []models.Approval{{
			ApproverID: manager.ID,
			Level:      1,
			Status:     models.ApprovalStatusPending,
		}}
	}

	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionCreate, models.EntityRequest, request.ID, id.ID,
		fmt.Sprintf("Created request %q", request.Title),
		map[string]interface{}{
			"department":  request.Department,
			"priority":    request.Priority,
			"totalAmount": request.TotalAmount.String(),
			"itemCount":   len(request.Items),
		})

	return request, nil
}

// GetRequest retrieves a single request, enforcing the caller's view scope.
func (s *RequestService) GetRequest(ctx context.Context, id access.Identity, requestID uuid.UUID) (*models.Request, error) {
	decision := s.policy.CheckAccess(id, access.FeatureRequests, access.ActionView, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if decision.PersonalOnly() && request.RequesterID != id.ID {
		return nil, ErrForbidden
	}
	if decision.DepartmentRestricted && request.Department != id.Department {
		return nil, ErrForbidden
	}

	return request, nil
}

// ListRequests retrieves requests visible to the caller. The decision's
// restrictions narrow the filter before it hits the database: personal_only
// pins the requester, a department restriction pins the department.
func (s *RequestService) ListRequests(ctx context.Context, id access.Identity, filter repository.RequestFilter) ([]models.Request, int64, error) {
	decision := s.policy.CheckAccess(id, access.FeatureRequests, access.ActionView, filter.Department)
	if !decision.Allowed {
		return nil, 0, ErrForbidden
	}

	if decision.PersonalOnly() {
		requesterID := id.ID
		filter.RequesterID = &requesterID
	}
	if decision.DepartmentRestricted && filter.Department == "" {
		filter.Department = id.Department
	}

	return s.repo.ListRequests(ctx, filter)
}

// actionableApproval returns the caller's PENDING approval link, verifying the
// chain-ordering invariant: no lower level may still be PENDING.
func actionableApproval(request *models.Request, approverID uuid.UUID) (*models.Approval, error) {
	var target *models.Approval
	for i := range request.Approvals {
		ap := &request.Approvals[i]
		if ap.Status == models.ApprovalStatusPending && ap.ApproverID == approverID {
			target = ap
			break
		}
	}
	if target == nil {
		return nil, ErrNotAssignedApprover
	}

	// Approvals may be pre-created in bulk, so sequential creation alone does
	// not guarantee ordering.
	for i := range request.Approvals {
		ap := &request.Approvals[i]
		if ap.Level < target.Level && ap.Status == models.ApprovalStatusPending {
			return nil, ErrApprovalOutOfOrder
		}
	}
	return target, nil
}

// SubmitApproval records an approver's decision on their pending level and
// advances the request state machine.
//
// REJECTED short-circuits the chain: the request flips REJECTED immediately.
// APPROVED flips the request only once no approval is left PENDING. The
// read-decide-write sequence runs in one transaction with an optimistic
// version check on the request row; losing the race surfaces
// repository.ErrVersionConflict for the caller to retry.
func (s *RequestService) SubmitApproval(ctx context.Context, id access.Identity, requestID uuid.UUID, input SubmitApprovalInput) (*models.Request, error) {
	if input.Decision != models.DecisionApproved && input.Decision != models.DecisionRejected {
		return nil, ErrInvalidDecision
	}
	if input.Decision == models.DecisionRejected && input.Comments == "" {
		return nil, ErrCommentsRequired
	}

	// Pre-transaction validation
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	// Role gate only. The assignment settles jurisdiction: a chain may route
	// a level to a manager outside the request's department, and that manager
	// must still be able to act on it.
	decision := s.policy.CheckAccess(id, access.FeatureRequests, access.ActionApprove, "")
	if !decision.Allowed {
		return nil, ErrForbidden
	}

	if request.IsTerminal() {
		return nil, ErrRequestAlreadyDecided
	}
	if _, err := actionableApproval(request, id.ID); err != nil {
		return nil, err
	}

	var decidedLevel int
	err = s.repo.WithTransaction(ctx, func(txRepo repository.RequestRepositoryInterface) error {
		// Re-fetch within the transaction; a concurrent approver may have
		// acted between validation and here.
		txRequest, err := txRepo.GetRequestByID(ctx, requestID)
		if err != nil {
			return err
		}
		if txRequest.IsTerminal() {
			return ErrRequestAlreadyDecided
		}

		approval, err := actionableApproval(txRequest, id.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		approval.Status = input.Decision
		approval.Comments = input.Comments
		approval.DecidedAt = &now
		if err := txRepo.UpdateApproval(ctx, approval); err != nil {
			return fmt.Errorf("failed to update approval: %w", err)
		}
		decidedLevel = approval.Level

		if input.Decision == models.DecisionRejected {
			if err := txRepo.UpdateRequestStatus(ctx, txRequest, models.RequestStatusRejected); err != nil {
				return fmt.Errorf("failed to update request status: %w", err)
			}
		} else {
			remaining := false
			for i := range txRequest.Approvals {
				if txRequest.Approvals[i].Status == models.ApprovalStatusPending {
					remaining = true
					break
				}
			}
			if !remaining {
				if err := txRepo.UpdateRequestStatus(ctx, txRequest, models.RequestStatusApproved); err != nil {
					return fmt.Errorf("failed to update request status: %w", err)
				}
			}
		}

		request = txRequest
		return nil
	})
	if err != nil {
		return nil, err
	}

	auditAction := models.AuditActionApprove
	if input.Decision == models.DecisionRejected {
		auditAction = models.AuditActionReject
	}
	s.audit.Record(ctx, auditAction, models.EntityRequest, request.ID, id.ID,
		fmt.Sprintf("Level %d decision: %s", decidedLevel, input.Decision),
		map[string]interface{}{
			"level":         decidedLevel,
			"decision":      input.Decision,
			"comments":      input.Comments,
			"requestStatus": request.Status,
		})

	return request, nil
}

// UpdateRequest patches a PENDING request. Allowed for the requester, a
// manager of the request's department, or an admin. Replacing items recomputes
// every line total and the request total.
func (s *RequestService) UpdateRequest(ctx context.Context, id access.Identity, requestID uuid.UUID, patch UpdateRequestInput) (*models.Request, error) {
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	decision := s.policy.CheckAccess(id, access.FeatureRequests, access.ActionEdit, request.Department)
	if !decision.Allowed {
		return nil, ErrForbidden
	}
	if decision.PersonalOnly() && request.RequesterID != id.ID {
		return nil, ErrForbidden
	}

	if request.Status != models.RequestStatusPending {
		return nil, ErrRequestAlreadyDecided
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		request.Title = *patch.Title
	}
	if patch.Description != nil {
		request.Description = *patch.Description
	}
	if patch.Priority != nil {
		if !models.ValidPriority(*patch.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *patch.Priority)
		}
		request.Priority = *patch.Priority
	}

	var newItems []models.RequestItem
	if patch.Items != nil {
		if len(patch.Items) == 0 {
			return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
		}
		newItems, err = s.buildItems(ctx, patch.Items)
		if err != nil {
			return nil, err
		}
		request.Items = newItems
		request.RecomputeTotal()
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repository.RequestRepositoryInterface) error {
		if newItems != nil {
			if err := txRepo.ReplaceRequestItems(ctx, request.ID, newItems); err != nil {
				return fmt.Errorf("failed to replace items: %w", err)
			}
		}
		return txRepo.UpdateRequestWithLock(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionUpdate, models.EntityRequest, request.ID, id.ID,
		fmt.Sprintf("Updated request %q", request.Title),
		map[string]interface{}{
			"totalAmount": request.TotalAmount.String(),
			"version":     request.Version,
		})

	return request, nil
}

// DeleteRequest removes a PENDING request with its items and approval chain.
// Managers (own department) and admins may delete per the policy table; the
// requester may always withdraw their own pending request.
func (s *RequestService) DeleteRequest(ctx context.Context, id access.Identity, requestID uuid.UUID) error {
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	decision := s.policy.CheckAccess(id, access.FeatureRequests, access.ActionDelete, request.Department)
	if !decision.Allowed && request.RequesterID != id.ID {
		return ErrForbidden
	}

	if request.Status != models.RequestStatusPending {
		return ErrRequestAlreadyDecided
	}

	if err := s.repo.DeleteRequest(ctx, requestID); err != nil {
		return err
	}

	s.audit.Record(ctx, models.AuditActionDelete, models.EntityRequest, request.ID, id.ID,
		fmt.Sprintf("Deleted request %q", request.Title), nil)

	return nil
}

// MarkInProgress moves an APPROVED request into fulfillment.
func (s *RequestService) MarkInProgress(ctx context.Context, id access.Identity, requestID uuid.UUID) (*models.Request, error) {
	return s.transition(ctx, id, requestID, models.RequestStatusApproved, models.RequestStatusInProgress)
}

// MarkCompleted closes out an IN_PROGRESS request.
func (s *RequestService) MarkCompleted(ctx context.Context, id access.Identity, requestID uuid.UUID) (*models.Request, error) {
	return s.transition(ctx, id, requestID, models.RequestStatusInProgress, models.RequestStatusCompleted)
}

func (s *RequestService) transition(ctx context.Context, id access.Identity, requestID uuid.UUID, from, to string) (*models.Request, error) {
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	decision := s.policy.CheckAccess(id, access.FeatureRequests, access.ActionEdit, request.Department)
	if !decision.Allowed || decision.PersonalOnly() {
		// Fulfillment is a manager/admin action; personal edit rights do not
		// extend to it.
		return nil, ErrForbidden
	}

	if request.Status != from {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateRequestStatus(ctx, request, to); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.AuditActionStatusChange, models.EntityRequest, request.ID, id.ID,
		fmt.Sprintf("Status %s -> %s", from, to),
		map[string]interface{}{"from": from, "to": to})

	return request, nil
}

// ListPendingApprovals returns the caller's approval queue: PENDING requests
// whose next actionable level is assigned to the caller. Admins see every
// pending request. The assignment filter runs in the repository query, before
// pagination, so pages never drop actionable requests and total reflects the
// whole queue.
func (s *RequestService) ListPendingApprovals(ctx context.Context, id access.Identity, limit, offset int) ([]models.Request, int64, error) {
	decision := s.policy.CheckAccess(id, access.FeaturePendingApprovals, access.ActionView, "")
	if !decision.Allowed {
		return nil, 0, ErrForbidden
	}

	if !decision.DepartmentRestricted {
		filter := repository.RequestFilter{
			Status: models.RequestStatusPending,
			Limit:  limit,
			Offset: offset,
		}
		return s.repo.ListRequests(ctx, filter)
	}

	return s.repo.ListPendingApprovals(ctx, id.ID, limit, offset)
}

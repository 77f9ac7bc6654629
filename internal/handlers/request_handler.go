package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supplies-service/internal/access"
	"supplies-service/internal/middleware"
	"supplies-service/internal/models"
	"supplies-service/internal/repository"
	"supplies-service/internal/services"
)

// RequestHandler handles HTTP requests for supply requests
type RequestHandler struct {
	service *services.RequestService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(service *services.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// CreateRequest creates a new supply request
// @Summary Create supply request
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body services.CreateRequestInput true "Create Request"
// @Success 201 {object} models.Request
// @Router /api/v1/requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input services.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.service.CreateRequest(c.Request.Context(), identity, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, request)
}

// GetRequest retrieves a supply request by ID
// @Summary Get supply request
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} models.Request
// @Router /api/v1/requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	request, err := h.service.GetRequest(c.Request.Context(), identity, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListRequests lists supply requests visible to the caller
// @Summary List supply requests
// @Tags Requests
// @Produce json
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param department query string false "Department filter"
// @Param search query string false "Title/description search"
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, offset = pagination(limit, offset)

	filter := repository.RequestFilter{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Department: c.Query("department"),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	}

	requests, total, err := h.service.ListRequests(c.Request.Context(), identity, filter)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   requests,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// SubmitApproval records the caller's decision on their pending approval level
// @Summary Approve or reject a request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body services.SubmitApprovalInput true "Decision"
// @Success 200 {object} models.Request
// @Router /api/v1/requests/{id}/approval [post]
func (h *RequestHandler) SubmitApproval(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var input services.SubmitApprovalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.service.SubmitApproval(c.Request.Context(), identity, id, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}

// UpdateRequest patches a pending request
// @Summary Update supply request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body services.UpdateRequestInput true "Patch"
// @Success 200 {object} models.Request
// @Router /api/v1/requests/{id} [patch]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var patch services.UpdateRequestInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.service.UpdateRequest(c.Request.Context(), identity, id, patch)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}

// DeleteRequest removes a pending request
// @Summary Delete supply request
// @Tags Requests
// @Param id path string true "Request ID"
// @Success 204
// @Router /api/v1/requests/{id} [delete]
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := h.service.DeleteRequest(c.Request.Context(), identity, id); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkInProgress starts fulfillment of an approved request
// @Summary Mark request in progress
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} models.Request
// @Router /api/v1/requests/{id}/start [post]
func (h *RequestHandler) MarkInProgress(c *gin.Context) {
	h.transition(c, h.service.MarkInProgress)
}

type transitionFn func(ctx context.Context, id access.Identity, requestID uuid.UUID) (*models.Request, error)

func (h *RequestHandler) transition(c *gin.Context, fn transitionFn) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	request, err := fn(c.Request.Context(), identity, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}

// MarkCompleted closes out an in-progress request
// @Summary Mark request completed
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} models.Request
// @Router /api/v1/requests/{id}/complete [post]
func (h *RequestHandler) MarkCompleted(c *gin.Context) {
	h.transition(c, h.service.MarkCompleted)
}

// ListPendingApprovals lists the caller's approval queue
// @Summary List pending approvals
// @Tags Requests
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/requests/pending-approvals [get]
func (h *RequestHandler) ListPendingApprovals(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, offset = pagination(limit, offset)

	requests, total, err := h.service.ListPendingApprovals(c.Request.Context(), identity, limit, offset)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   requests,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

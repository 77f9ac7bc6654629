package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supplies-service/internal/middleware"
	"supplies-service/internal/services"
)

// InventoryHandler handles HTTP requests for stock items
type InventoryHandler struct {
	service *services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// CreateItem creates a stock item
// @Summary Create item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body services.ItemInput true "Create Item"
// @Success 201 {object} models.Item
// @Router /api/v1/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input services.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), identity, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListItems lists catalog items
// @Summary List items
// @Tags Inventory
// @Produce json
// @Param department query string false "Department filter"
// @Success 200 {array} models.Item
// @Router /api/v1/items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.service.ListItems(c.Request.Context(), identity, c.Query("department"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

// ListLowStockItems lists items below their minimum stock level
// @Summary List low stock items
// @Tags Inventory
// @Produce json
// @Param department query string false "Department filter"
// @Success 200 {array} models.Item
// @Router /api/v1/items/low-stock [get]
func (h *InventoryHandler) ListLowStockItems(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.service.ListLowStockItems(c.Request.Context(), identity, c.Query("department"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetItem retrieves a stock item by ID
// @Summary Get item
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.Item
// @Router /api/v1/items/{id} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), identity, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItem replaces a stock item's fields
// @Summary Update item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body services.ItemInput true "Update Item"
// @Success 200 {object} models.Item
// @Router /api/v1/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var input services.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), identity, id, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a stock item
// @Summary Delete item
// @Tags Inventory
// @Param id path string true "Item ID"
// @Success 204
// @Router /api/v1/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), identity, id); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supplies-service/internal/middleware"
	"supplies-service/internal/services"
)

// ProcurementHandler handles HTTP requests for suppliers and purchase orders
type ProcurementHandler struct {
	service *services.ProcurementService
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(service *services.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{service: service}
}

// CreateSupplier registers a vendor
// @Summary Create supplier
// @Tags Procurement
// @Accept json
// @Produce json
// @Param request body services.SupplierInput true "Create Supplier"
// @Success 201 {object} models.Supplier
// @Router /api/v1/suppliers [post]
func (h *ProcurementHandler) CreateSupplier(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input services.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := h.service.CreateSupplier(c.Request.Context(), identity, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// ListSuppliers lists all vendors
// @Summary List suppliers
// @Tags Procurement
// @Produce json
// @Success 200 {array} models.Supplier
// @Router /api/v1/suppliers [get]
func (h *ProcurementHandler) ListSuppliers(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	suppliers, err := h.service.ListSuppliers(c.Request.Context(), identity)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

// UpdateSupplier replaces a vendor's contact fields
// @Summary Update supplier
// @Tags Procurement
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param request body services.SupplierInput true "Update Supplier"
// @Success 200 {object} models.Supplier
// @Router /api/v1/suppliers/{id} [put]
func (h *ProcurementHandler) UpdateSupplier(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier id"})
		return
	}

	var input services.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := h.service.UpdateSupplier(c.Request.Context(), identity, id, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a vendor
// @Summary Delete supplier
// @Tags Procurement
// @Param id path string true "Supplier ID"
// @Success 204
// @Router /api/v1/suppliers/{id} [delete]
func (h *ProcurementHandler) DeleteSupplier(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier id"})
		return
	}

	if err := h.service.DeleteSupplier(c.Request.Context(), identity, id); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreatePurchaseOrder places a draft order with a supplier
// @Summary Create purchase order
// @Tags Procurement
// @Accept json
// @Produce json
// @Param request body services.CreatePurchaseOrderInput true "Create Purchase Order"
// @Success 201 {object} models.PurchaseOrder
// @Router /api/v1/purchase-orders [post]
func (h *ProcurementHandler) CreatePurchaseOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input services.CreatePurchaseOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	po, err := h.service.CreatePurchaseOrder(c.Request.Context(), identity, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, po)
}

// ListPurchaseOrders lists orders, optionally by status
// @Summary List purchase orders
// @Tags Procurement
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {array} models.PurchaseOrder
// @Router /api/v1/purchase-orders [get]
func (h *ProcurementHandler) ListPurchaseOrders(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.service.ListPurchaseOrders(c.Request.Context(), identity, c.Query("status"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetPurchaseOrder retrieves an order by ID
// @Summary Get purchase order
// @Tags Procurement
// @Produce json
// @Param id path string true "Purchase Order ID"
// @Success 200 {object} models.PurchaseOrder
// @Router /api/v1/purchase-orders/{id} [get]
func (h *ProcurementHandler) GetPurchaseOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase order id"})
		return
	}

	po, err := h.service.GetPurchaseOrder(c.Request.Context(), identity, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, po)
}

// AdvancePurchaseOrder moves an order one step forward
// @Summary Advance purchase order
// @Tags Procurement
// @Produce json
// @Param id path string true "Purchase Order ID"
// @Success 200 {object} models.PurchaseOrder
// @Router /api/v1/purchase-orders/{id}/advance [post]
func (h *ProcurementHandler) AdvancePurchaseOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase order id"})
		return
	}

	po, err := h.service.AdvancePurchaseOrder(c.Request.Context(), identity, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, po)
}

// CancelPurchaseOrder cancels an unreceived order
// @Summary Cancel purchase order
// @Tags Procurement
// @Param id path string true "Purchase Order ID"
// @Success 204
// @Router /api/v1/purchase-orders/{id}/cancel [post]
func (h *ProcurementHandler) CancelPurchaseOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase order id"})
		return
	}

	if err := h.service.CancelPurchaseOrder(c.Request.Context(), identity, id); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ReceivePurchaseOrder marks an order received and restocks inventory
// @Summary Receive purchase order
// @Tags Procurement
// @Produce json
// @Param id path string true "Purchase Order ID"
// @Success 200 {object} models.PurchaseOrder
// @Router /api/v1/purchase-orders/{id}/receive [post]
func (h *ProcurementHandler) ReceivePurchaseOrder(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase order id"})
		return
	}

	po, err := h.service.ReceivePurchaseOrder(c.Request.Context(), identity, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, po)
}

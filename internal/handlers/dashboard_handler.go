package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supplies-service/internal/access"
	"supplies-service/internal/middleware"
)

// DashboardHandler routes callers to the dashboards their role may see.
type DashboardHandler struct {
	policy *access.Policy
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(policy *access.Policy) *DashboardHandler {
	return &DashboardHandler{policy: policy}
}

// GetDefaultDashboard returns the caller's landing dashboard path
// @Summary Get default dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDefaultDashboard(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path": access.DefaultDashboard(identity.Role),
	})
}

// CheckDashboardAccess reports whether the caller may view a dashboard type
// @Summary Check dashboard access
// @Tags Dashboard
// @Produce json
// @Param type path string true "Dashboard type (admin, system, department, personal; aliases manager, employee)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/dashboard/{type} [get]
func (h *DashboardHandler) CheckDashboardAccess(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	dashboardType := c.Param("type")
	allowed := h.policy.CanAccessDashboard(identity.Role, dashboardType)
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"allowed": false,
			"type":    dashboardType,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"allowed": true,
		"type":    dashboardType,
	})
}

// CheckAccess evaluates a feature/action pair for the caller
// @Summary Check feature access
// @Tags Dashboard
// @Produce json
// @Param feature query string true "Feature name"
// @Param action query string true "Action flag"
// @Param department query string false "Target department"
// @Success 200 {object} access.Decision
// @Router /api/v1/access/check [get]
func (h *DashboardHandler) CheckAccess(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	feature := access.Feature(c.Query("feature"))
	action := access.Action(c.Query("action"))
	if feature == "" || action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feature and action are required"})
		return
	}

	decision := h.policy.CheckAccess(identity, feature, action, c.Query("department"))
	c.JSON(http.StatusOK, decision)
}

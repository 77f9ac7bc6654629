package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supplies-service/internal/middleware"
	"supplies-service/internal/repository"
	"supplies-service/internal/services"
)

// AuditHandler handles HTTP requests for the audit trail
type AuditHandler struct {
	recorder *services.AuditRecorder
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(recorder *services.AuditRecorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// ListAuditLogs lists audit entries, newest first
// @Summary List audit logs
// @Tags Audit
// @Produce json
// @Param action query string false "Action filter"
// @Param entity query string false "Entity filter"
// @Param entityId query string false "Entity ID filter"
// @Param performedBy query string false "Actor filter"
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, offset = pagination(limit, offset)

	filter := repository.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("entityId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entityId"})
			return
		}
		filter.EntityID = &id
	}
	if raw := c.Query("performedBy"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid performedBy"})
			return
		}
		filter.PerformedBy = &id
	}

	entries, total, err := h.recorder.List(c.Request.Context(), identity, filter)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   entries,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

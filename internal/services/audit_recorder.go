package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"supplies-service/internal/access"
	"supplies-service/internal/models"
	"supplies-service/internal/repository"
)

// AuditRecorder appends entries to the audit trail. Recording is best-effort
// from the caller's point of view: a failed write is logged and swallowed so
// the business transition it documents still stands.
type AuditRecorder struct {
	repo   repository.AuditRepositoryInterface
	policy *access.Policy
}

// NewAuditRecorder creates a new AuditRecorder
func NewAuditRecorder(repo repository.AuditRepositoryInterface, policy *access.Policy) *AuditRecorder {
	return &AuditRecorder{repo: repo, policy: policy}
}

// Record appends one audit entry. Metadata may be nil.
func (a *AuditRecorder) Record(ctx context.Context, action, entity string, entityID, performedBy uuid.UUID, details string, metadata map[string]interface{}) {
	entry := &models.AuditLogEntry{
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		PerformedBy: performedBy,
		Details:     details,
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"action": action,
				"entity": entity,
			}).Error("Failed to marshal audit metadata")
		} else {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err := a.repo.CreateAuditLog(ctx, entry); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"entity":      entity,
			"entityId":    entityID,
			"performedBy": performedBy,
		}).Error("Failed to write audit log entry")
	}
}

// List returns audit entries for the admin audit screen. Only roles the policy
// grants auditLogs view access may read the trail.
func (a *AuditRecorder) List(ctx context.Context, id access.Identity, filter repository.AuditFilter) ([]models.AuditLogEntry, int64, error) {
	decision := a.policy.CheckAccess(id, access.FeatureAuditLogs, access.ActionView, "")
	if !decision.Allowed {
		return nil, 0, ErrForbidden
	}
	return a.repo.ListAuditLogs(ctx, filter)
}

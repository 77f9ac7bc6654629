package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supplies-service/internal/models"
)

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	Action      string
	Entity      string
	EntityID    *uuid.UUID
	PerformedBy *uuid.UUID
	Limit       int
	Offset      int
}

// AuditRepositoryInterface abstracts the append-only audit trail.
type AuditRepositoryInterface interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLogEntry) error
	ListAuditLogs(ctx context.Context, filter AuditFilter) ([]models.AuditLogEntry, int64, error)
}

// AuditRepository handles database operations for the audit trail.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog appends an audit entry.
func (r *AuditRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListAuditLogs retrieves audit entries matching the filter, newest first.
func (r *AuditRepository) ListAuditLogs(ctx context.Context, filter AuditFilter) ([]models.AuditLogEntry, int64, error) {
	var entries []models.AuditLogEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AuditLogEntry{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.PerformedBy != nil {
		query = query.Where("performed_by = ?", *filter.PerformedBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&entries).Error

	return entries, total, err
}

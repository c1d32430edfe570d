package audit

import (
	"context"

	"go-doctask/internal/tenant"

	"gorm.io/gorm"
)

type HistoryFilter struct {
	EntityType string
	EntityID   string
}

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	FindRecent(ctx context.Context, filter HistoryFilter, limit int) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindRecent(ctx context.Context, filter HistoryFilter, limit int) ([]AuditLog, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx))
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}

	var entries []AuditLog
	err := q.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

package repository

import (
	"context"

	"github.com/smartcms/smartcontent/internal/domain"
	"gorm.io/gorm"
)

// StatusAuditRepository append-only audit log for status changes
type StatusAuditRepository interface {
	Save(ctx context.Context, entry *domain.ContentStatusAudit) error
	FindByContentID(ctx context.Context, contentID string) ([]*domain.ContentStatusAudit, error)
}

type statusAuditRepository struct {
	db *gorm.DB
}

// NewStatusAuditRepository creates an audit repository backed by db
func NewStatusAuditRepository(db *gorm.DB) StatusAuditRepository {
	return &statusAuditRepository{db: db}
}

func (r *statusAuditRepository) Save(ctx context.Context, entry *domain.ContentStatusAudit) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByContentID returns audit entries newest first
func (r *statusAuditRepository) FindByContentID(ctx context.Context, contentID string) ([]*domain.ContentStatusAudit, error) {
	var entries []*domain.ContentStatusAudit
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("changed_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

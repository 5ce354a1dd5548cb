package repository

import (
	"context"
	"errors"

	"github.com/smartcms/smartcontent/internal/common"
	"github.com/smartcms/smartcontent/internal/domain"
	"gorm.io/gorm"
)

// ContentHistoryRepository append-only snapshot store
type ContentHistoryRepository interface {
	Save(ctx context.Context, history *domain.ContentHistory) error
	FindByContentID(ctx context.Context, contentID string) ([]*domain.ContentHistory, error)
	FindByContentIDAndVersion(ctx context.Context, contentID string, version int) (*domain.ContentHistory, error)
}

type contentHistoryRepository struct {
	db *gorm.DB
}

// NewContentHistoryRepository creates a history repository backed by db
func NewContentHistoryRepository(db *gorm.DB) ContentHistoryRepository {
	return &contentHistoryRepository{db: db}
}

func (r *contentHistoryRepository) Save(ctx context.Context, history *domain.ContentHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// FindByContentID returns all snapshots for a content ID, oldest version first
func (r *contentHistoryRepository) FindByContentID(ctx context.Context, contentID string) ([]*domain.ContentHistory, error) {
	var records []*domain.ContentHistory
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("version ASC, created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *contentHistoryRepository) FindByContentIDAndVersion(ctx context.Context, contentID string, version int) (*domain.ContentHistory, error) {
	var record domain.ContentHistory
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND version = ?", contentID, version).
		Order("created_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

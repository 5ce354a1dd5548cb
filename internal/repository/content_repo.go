package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smartcms/smartcontent/internal/common"
	"github.com/smartcms/smartcontent/internal/domain"
	"gorm.io/gorm"
)

// ContentRepository primary store for content items
type ContentRepository interface {
	Create(ctx context.Context, content *domain.Content) error
	FindByID(ctx context.Context, id string) (*domain.Content, error)
	FindByIDAndStatus(ctx context.Context, id string, status domain.ContentStatus) (*domain.Content, error)

	// Update persists content with a compare-and-swap on expectedVersion:
	// the write only applies when the stored row still carries that version.
	// Returns common.ErrVersionConflict when a concurrent writer won.
	Update(ctx context.Context, content *domain.Content, expectedVersion int) error

	Delete(ctx context.Context, content *domain.Content) error
	DeleteAll(ctx context.Context, contents []*domain.Content) error

	ListByOrgAndStatus(ctx context.Context, orgID string, status domain.ContentStatus, page, limit int) ([]*domain.Content, int64, error)
	ListByOrgExcludingStatus(ctx context.Context, orgID string, status domain.ContentStatus, page, limit int) ([]*domain.Content, int64, error)

	FindByStatusAndScheduleWindow(ctx context.Context, status domain.ContentStatus, from, to time.Time) ([]*domain.Content, error)
	FindByStatusAndScheduleBefore(ctx context.Context, status domain.ContentStatus, cutoff time.Time) ([]*domain.Content, error)
	FindByStatusAndDeletedBefore(ctx context.Context, status domain.ContentStatus, cutoff time.Time) ([]*domain.Content, error)

	ExistsBySlug(ctx context.Context, slug, orgID string, status domain.ContentStatus) (bool, error)
	ExistsBySlugExcluding(ctx context.Context, slug, orgID string, status domain.ContentStatus, excludeID string) (bool, error)
}

// contentRepository GORM implementation
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a content repository backed by db
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, content *domain.Content) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) FindByID(ctx context.Context, id string) (*domain.Content, error) {
	var content domain.Content
	err := r.db.WithContext(ctx).First(&content, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) FindByIDAndStatus(ctx context.Context, id string, status domain.ContentStatus) (*domain.Content, error) {
	var content domain.Content
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, status).
		First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) Update(ctx context.Context, content *domain.Content, expectedVersion int) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Content{}).
		Where("id = ? AND version = ?", content.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrVersionConflict
	}
	return nil
}

func (r *contentRepository) Delete(ctx context.Context, content *domain.Content) error {
	return r.db.WithContext(ctx).Delete(&domain.Content{}, "id = ?", content.ID).Error
}

func (r *contentRepository) DeleteAll(ctx context.Context, contents []*domain.Content) error {
	if len(contents) == 0 {
		return nil
	}
	ids := make([]string, len(contents))
	for i, c := range contents {
		ids[i] = c.ID
	}
	return r.db.WithContext(ctx).Delete(&domain.Content{}, "id IN ?", ids).Error
}

func (r *contentRepository) ListByOrgAndStatus(ctx context.Context, orgID string, status domain.ContentStatus, page, limit int) ([]*domain.Content, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Content{}).
		Where("org_id = ? AND status = ?", orgID, status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Bin listings sort by deletion time, everything else by last update
	order := "updated_at DESC"
	if status == domain.StatusDeleted {
		order = "deleted_at DESC"
	}

	var items []*domain.Content
	err := query.
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *contentRepository) ListByOrgExcludingStatus(ctx context.Context, orgID string, status domain.ContentStatus, page, limit int) ([]*domain.Content, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Content{}).
		Where("org_id = ? AND status <> ?", orgID, status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.Content
	err := query.
		Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *contentRepository) FindByStatusAndScheduleWindow(ctx context.Context, status domain.ContentStatus, from, to time.Time) ([]*domain.Content, error) {
	var items []*domain.Content
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_publish_at >= ? AND scheduled_publish_at <= ?", status, from, to).
		Find(&items).Error
	return items, err
}

func (r *contentRepository) FindByStatusAndScheduleBefore(ctx context.Context, status domain.ContentStatus, cutoff time.Time) ([]*domain.Content, error) {
	var items []*domain.Content
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_publish_at < ?", status, cutoff).
		Find(&items).Error
	return items, err
}

func (r *contentRepository) FindByStatusAndDeletedBefore(ctx context.Context, status domain.ContentStatus, cutoff time.Time) ([]*domain.Content, error) {
	var items []*domain.Content
	err := r.db.WithContext(ctx).
		Where("status = ? AND deleted_at < ?", status, cutoff).
		Find(&items).Error
	return items, err
}

func (r *contentRepository) ExistsBySlug(ctx context.Context, slug, orgID string, status domain.ContentStatus) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Content{}).
		Where("slug = ? AND org_id = ? AND status = ?", slug, orgID, status).
		Count(&count).Error
	return count > 0, err
}

func (r *contentRepository) ExistsBySlugExcluding(ctx context.Context, slug, orgID string, status domain.ContentStatus, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Content{}).
		Where("slug = ? AND org_id = ? AND status = ? AND id <> ?", slug, orgID, status, excludeID).
		Count(&count).Error
	return count > 0, err
}

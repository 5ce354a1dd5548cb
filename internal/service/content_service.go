package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartcms/smartcontent/internal/common"
	"github.com/smartcms/smartcontent/internal/domain"
	"github.com/smartcms/smartcontent/internal/repository"
	"github.com/smartcms/smartcontent/pkg/logger"
)

// ContentService business logic for content CRUD, versioning and slugs.
// Every version-incrementing mutation stores a pre-mutation snapshot inside
// the same transaction as the content write.
type ContentService interface {
	Create(ctx context.Context, req *domain.CreateContentRequest, userID, orgID string) (*domain.Content, error)
	GetByID(ctx context.Context, id string) (*domain.Content, error)
	ListOrgContent(ctx context.Context, orgID string, page, limit int) ([]*domain.Content, *common.Meta, error)
	ListByStatus(ctx context.Context, orgID string, status domain.ContentStatus, page, limit int) ([]*domain.Content, *common.Meta, error)
	UpdateFields(ctx context.Context, contentID string, req *domain.UpdateContentRequest, updatedBy string) (*domain.Content, error)
	ListVersions(ctx context.Context, contentID string) ([]*domain.ContentVersion, error)
	Rollback(ctx context.Context, contentID string, targetVersion int, rolledBackBy string, fields []domain.RollbackField) (*domain.Content, error)
	UpdateSlug(ctx context.Context, contentID, newSlug, updatedBy string) (*domain.Content, error)
	ValidateSlug(ctx context.Context, slug, orgID, contentID string) (*domain.SlugValidation, error)
	GenerateUniqueSlug(ctx context.Context, contentID, orgID string) (string, error)
}

type contentService struct {
	repo    repository.ContentRepository
	history repository.ContentHistoryRepository
	tx      repository.TxRunner
	slugs   SlugGenerator
}

// NewContentService creates a new ContentService
func NewContentService(repo repository.ContentRepository, history repository.ContentHistoryRepository, tx repository.TxRunner, slugs SlugGenerator) ContentService {
	return &contentService{repo: repo, history: history, tx: tx, slugs: slugs}
}

// Create validates the request and stores a new DRAFT item at version 1
func (s *contentService) Create(ctx context.Context, req *domain.CreateContentRequest, userID, orgID string) (*domain.Content, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	slug, err := s.slugs.Generate(req.Title)
	if err != nil || slug == "" {
		slug = s.slugs.GenerateWithAI(ctx, req.Description)
	}

	now := time.Now().UTC()
	actor := domain.UserDetails{UserID: userID}
	content := &domain.Content{
		ID:              uuid.NewString(),
		OrgID:           orgID,
		Title:           req.Title,
		Slug:            slug,
		Description:     req.Description,
		Body:            req.Body,
		Tags:            orEmptyStrings(req.Tags),
		ContentType:     req.ContentType,
		Meta:            req.Meta,
		MediaReferences: orEmptyMedia(req.MediaReferences),
		AIInsights:      req.AIInsights,
		Status:          domain.StatusDraft,
		Version:         1,
		Author:          actor,
		LastUpdatedBy:   actor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	logger.GetLogger().Info().
		Str("content_id", content.ID).
		Str("org_id", orgID).
		Str("user_id", userID).
		Msg("content created")
	return content, nil
}

// GetByID fetches a single content item
func (s *contentService) GetByID(ctx context.Context, id string) (*domain.Content, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: content ID cannot be blank", common.ErrInvalidInput)
	}
	return s.repo.FindByID(ctx, id)
}

// ListOrgContent returns the org's content excluding binned items
func (s *contentService) ListOrgContent(ctx context.Context, orgID string, page, limit int) ([]*domain.Content, *common.Meta, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.repo.ListByOrgExcludingStatus(ctx, orgID, domain.StatusDeleted, page, limit)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: no content found for org %s", common.ErrContentNotFound, orgID)
	}
	return items, common.NewPageMeta(orgID, page, limit, total), nil
}

// ListByStatus returns the org's content in a given status
func (s *contentService) ListByStatus(ctx context.Context, orgID string, status domain.ContentStatus, page, limit int) ([]*domain.Content, *common.Meta, error) {
	if !status.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown status %q", common.ErrInvalidInput, status)
	}
	page, limit = normalizePage(page, limit)

	items, total, err := s.repo.ListByOrgAndStatus(ctx, orgID, status, page, limit)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: no content found for org %s with status %s", common.ErrContentNotFound, orgID, status)
	}
	return items, common.NewPageMeta(orgID, page, limit, total), nil
}

// UpdateFields applies the non-nil fields of req. The pre-update state is
// snapshotted with a generated change summary in the same transaction.
func (s *contentService) UpdateFields(ctx context.Context, contentID string, req *domain.UpdateContentRequest, updatedBy string) (*domain.Content, error) {
	existing, err := s.repo.FindByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	actor := domain.UserDetails{UserID: updatedBy}
	snapshot := newSnapshot(existing, actor, changeSummary(req, existing))
	prevVersion := existing.Version

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Body != nil {
		existing.Body = *req.Body
	}
	if req.Tags != nil {
		existing.Tags = req.Tags
	}
	if req.Meta != nil {
		existing.Meta = *req.Meta
	}
	if req.MediaReferences != nil {
		existing.MediaReferences = req.MediaReferences
	}
	existing.Version = prevVersion + 1
	existing.UpdatedAt = time.Now().UTC()
	existing.LastUpdatedBy = actor

	err = s.tx.InTx(ctx, func(contents repository.ContentRepository, history repository.ContentHistoryRepository) error {
		if err := history.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		return contents.Update(ctx, existing, prevVersion)
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// ListVersions lists the snapshot history for a content ID, oldest first
func (s *contentService) ListVersions(ctx context.Context, contentID string) ([]*domain.ContentVersion, error) {
	entries, err := s.history.FindByContentID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no versions found for content %s", common.ErrVersionNotFound, contentID)
	}

	versions := make([]*domain.ContentVersion, len(entries))
	for i, entry := range entries {
		updatedBy := entry.CreatedBy.Name
		if updatedBy == "" {
			updatedBy = entry.CreatedBy.UserID
		}
		versions[i] = &domain.ContentVersion{
			Version:       entry.Version,
			UpdatedBy:     updatedBy,
			UpdatedAt:     entry.CreatedAt,
			ChangeSummary: entry.ChangeReason,
		}
	}
	return versions, nil
}

// Rollback restores the selected fields from the snapshot recorded at
// targetVersion. The current state is snapshotted first, so it is never
// lost; the rollback itself produces a new version.
func (s *contentService) Rollback(ctx context.Context, contentID string, targetVersion int, rolledBackBy string, fields []domain.RollbackField) (*domain.Content, error) {
	if strings.TrimSpace(contentID) == "" {
		return nil, fmt.Errorf("%w: content ID cannot be blank", common.ErrInvalidInput)
	}
	if targetVersion <= 0 {
		return nil, fmt.Errorf("%w: version must be positive", common.ErrInvalidInput)
	}
	if strings.TrimSpace(rolledBackBy) == "" {
		return nil, fmt.Errorf("%w: rollback user cannot be blank", common.ErrInvalidInput)
	}
	for _, f := range fields {
		if !f.IsValid() {
			return nil, fmt.Errorf("%w: unknown rollback field %q", common.ErrInvalidInput, f)
		}
	}

	current, err := s.repo.FindByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	switch {
	case current.Version == targetVersion:
		return nil, fmt.Errorf("%w: cannot rollback to the same version", common.ErrInvalidInput)
	case current.Version < targetVersion:
		return nil, fmt.Errorf("%w: cannot rollback to a future version", common.ErrInvalidInput)
	case current.Status == domain.StatusDeleted:
		return nil, fmt.Errorf("%w: cannot rollback deleted content", common.ErrInvalidState)
	}

	if len(fields) == 0 {
		fields = domain.AllRollbackFields()
	}

	actor := domain.UserDetails{UserID: rolledBackBy}
	preRollback := newSnapshot(current, actor, fmt.Sprintf("Before rollback to version %d", targetVersion))
	prevVersion := current.Version

	err = s.tx.InTx(ctx, func(contents repository.ContentRepository, history repository.ContentHistoryRepository) error {
		if err := history.Save(ctx, preRollback); err != nil {
			return fmt.Errorf("save pre-rollback snapshot: %w", err)
		}

		entry, err := history.FindByContentIDAndVersion(ctx, contentID, targetVersion)
		if err != nil {
			return err
		}

		for _, field := range fields {
			field.Apply(current, &entry.Snapshot)
		}
		current.Version = prevVersion + 1
		current.UpdatedAt = time.Now().UTC()
		current.LastUpdatedBy = actor

		return contents.Update(ctx, current, prevVersion)
	})
	if err != nil {
		if isTypedError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: rollback of content %s to version %d: %v", common.ErrServiceFailure, contentID, targetVersion, err)
	}

	logger.GetLogger().Info().
		Str("content_id", contentID).
		Int("target_version", targetVersion).
		Int("new_version", current.Version).
		Msg("content rolled back")
	return current, nil
}

// UpdateSlug changes the slug, snapshotting the prior state
func (s *contentService) UpdateSlug(ctx context.Context, contentID, newSlug, updatedBy string) (*domain.Content, error) {
	if strings.TrimSpace(newSlug) == "" {
		return nil, fmt.Errorf("%w: slug cannot be blank", common.ErrInvalidInput)
	}

	content, err := s.repo.FindByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	actor := domain.UserDetails{UserID: updatedBy}
	snapshot := newSnapshot(content, actor, "Slug updated to "+newSlug)
	prevVersion := content.Version

	content.Slug = newSlug
	content.Version = prevVersion + 1
	content.UpdatedAt = time.Now().UTC()
	content.LastUpdatedBy = actor

	err = s.tx.InTx(ctx, func(contents repository.ContentRepository, history repository.ContentHistoryRepository) error {
		if err := history.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		return contents.Update(ctx, content, prevVersion)
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// ValidateSlug checks availability and offers alternatives when taken
func (s *contentService) ValidateSlug(ctx context.Context, slug, orgID, contentID string) (*domain.SlugValidation, error) {
	available, err := s.slugs.IsAvailable(ctx, slug, orgID, contentID)
	if err != nil {
		return nil, err
	}

	result := &domain.SlugValidation{Available: available}
	if !available {
		suggestions, err := s.slugs.Suggestions(ctx, slug, orgID)
		if err != nil {
			return nil, err
		}
		result.Suggestions = suggestions
	}
	return result, nil
}

// GenerateUniqueSlug derives a unique published-scope slug from the item's
// own title and description.
func (s *contentService) GenerateUniqueSlug(ctx context.Context, contentID, orgID string) (string, error) {
	content, err := s.repo.FindByID(ctx, contentID)
	if err != nil {
		return "", err
	}
	return s.slugs.GenerateUnique(ctx, content.Title, content.Description, orgID)
}

// --- helpers ---

func validateCreateRequest(req *domain.CreateContentRequest) error {
	var problems []string
	if strings.TrimSpace(req.Title) == "" {
		problems = append(problems, "title cannot be empty")
	}
	if strings.TrimSpace(req.Description) == "" {
		problems = append(problems, "description cannot be empty")
	}
	if strings.TrimSpace(req.Body) == "" {
		problems = append(problems, "content body cannot be empty")
	}
	if req.ContentType == "" {
		problems = append(problems, "content type is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, strings.Join(problems, ", "))
	}
	return nil
}

// changeSummary lists the field names the request actually changes
func changeSummary(req *domain.UpdateContentRequest, existing *domain.Content) string {
	var changed []string

	if req.Title != nil && *req.Title != existing.Title {
		changed = append(changed, "Title")
	}
	if req.Description != nil && *req.Description != existing.Description {
		changed = append(changed, "Description")
	}
	if req.Body != nil && *req.Body != existing.Body {
		changed = append(changed, "Body")
	}
	if req.Tags != nil && !slices.Equal(req.Tags, existing.Tags) {
		changed = append(changed, "Tags")
	}
	if req.Meta != nil && !reflect.DeepEqual(*req.Meta, existing.Meta) {
		changed = append(changed, "Meta")
	}
	if req.MediaReferences != nil && !reflect.DeepEqual(req.MediaReferences, existing.MediaReferences) {
		changed = append(changed, "Media References")
	}

	if len(changed) == 0 {
		return "No changes made"
	}
	return "Updated " + strings.Join(changed, ", ")
}

func newSnapshot(content *domain.Content, createdBy domain.UserDetails, reason string) *domain.ContentHistory {
	return &domain.ContentHistory{
		ID:           uuid.NewString(),
		ContentID:    content.ID,
		Version:      content.Version,
		Snapshot:     *content,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    createdBy,
		ChangeReason: reason,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func orEmptyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMedia(m []domain.MediaReference) []domain.MediaReference {
	if m == nil {
		return []domain.MediaReference{}
	}
	return m
}

// isTypedError reports whether err already carries one of the taxonomy
// sentinels, so it should not be re-wrapped as a service failure.
func isTypedError(err error) bool {
	for _, sentinel := range []error{
		common.ErrContentNotFound,
		common.ErrVersionNotFound,
		common.ErrInvalidInput,
		common.ErrInvalidState,
		common.ErrInvalidTransition,
		common.ErrInvalidScheduleTime,
		common.ErrVersionConflict,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartcms/smartcontent/internal/client"
	"github.com/smartcms/smartcontent/internal/common"
	"github.com/smartcms/smartcontent/internal/domain"
	"github.com/smartcms/smartcontent/internal/repository"
	"github.com/smartcms/smartcontent/pkg/logger"
)

const (
	// DefaultSweepSafetyWindow is the lookback margin for the publish sweep
	DefaultSweepSafetyWindow = 10 * time.Minute
	// DefaultBinRetention is how long soft-deleted content stays recoverable
	DefaultBinRetention = 15 * 24 * time.Hour
)

// LifecycleService owns status transitions, scheduled publishing and the
// recycle bin. Status changes outside this service happen only through
// rollback (which may restore a prior status value).
type LifecycleService interface {
	TransitionStatus(ctx context.Context, contentID string, newStatus domain.ContentStatus, actor, note string) (*domain.Content, error)
	SchedulePublish(ctx context.Context, contentID string, publishAt time.Time, actor string) (*domain.Content, error)

	// ProcessScheduledContent is the timer-driven publish sweep
	ProcessScheduledContent(ctx context.Context) error

	MoveToBin(ctx context.Context, id, actor string) error
	Restore(ctx context.Context, id, actor string) (*domain.Content, error)
	HardDelete(ctx context.Context, id string) error

	// PurgeExpired is the daily bin purge sweep
	PurgeExpired(ctx context.Context) error

	ListBin(ctx context.Context, orgID string, page, limit int) ([]*domain.Content, *common.Meta, error)
	ListStatusAudit(ctx context.Context, contentID string) ([]*domain.ContentStatusAudit, error)
}

// LifecycleConfig tunes the timer-driven sweeps
type LifecycleConfig struct {
	SweepSafetyWindow time.Duration
	BinRetention      time.Duration
}

type lifecycleService struct {
	repo         repository.ContentRepository
	audit        repository.StatusAuditRepository
	media        client.MediaClient
	safetyWindow time.Duration
	retention    time.Duration
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(repo repository.ContentRepository, audit repository.StatusAuditRepository, media client.MediaClient, cfg LifecycleConfig) LifecycleService {
	if cfg.SweepSafetyWindow <= 0 {
		cfg.SweepSafetyWindow = DefaultSweepSafetyWindow
	}
	if cfg.BinRetention <= 0 {
		cfg.BinRetention = DefaultBinRetention
	}
	return &lifecycleService{
		repo:         repo,
		audit:        audit,
		media:        media,
		safetyWindow: cfg.SweepSafetyWindow,
		retention:    cfg.BinRetention,
	}
}

// TransitionStatus applies a status change permitted by the transition table
// and appends one audit entry.
func (s *lifecycleService) TransitionStatus(ctx context.Context, contentID string, newStatus domain.ContentStatus, actor, note string) (*domain.Content, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrInvalidInput, newStatus)
	}

	content, err := s.repo.FindByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	oldStatus := content.Status
	if !oldStatus.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, oldStatus, newStatus)
	}

	now := time.Now().UTC()
	actorDetails := domain.UserDetails{UserID: actor}

	content.Status = newStatus
	content.UpdatedAt = now
	content.LastUpdatedBy = actorDetails
	if newStatus == domain.StatusPublished {
		content.PublishedAt = &now
	}
	if newStatus == domain.StatusApproved || newStatus == domain.StatusRejected {
		content.ReviewedBy = &actorDetails
	}

	if err := s.repo.Update(ctx, content, content.Version); err != nil {
		return nil, err
	}

	entry := &domain.ContentStatusAudit{
		ID:        uuid.NewString(),
		ContentID: contentID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: actorDetails,
		ChangedAt: now,
		Note:      note,
	}
	if err := s.audit.Save(ctx, entry); err != nil {
		// Status is already persisted; surface the partial write instead of
		// hiding it.
		return nil, fmt.Errorf("%w: status changed but audit write failed for content %s: %v", common.ErrServiceFailure, contentID, err)
	}

	logger.GetLogger().Info().
		Str("content_id", contentID).
		Str("old_status", string(oldStatus)).
		Str("new_status", string(newStatus)).
		Str("user_id", actor).
		Msg("content status updated")
	return content, nil
}

// SchedulePublish marks content for automatic publishing at publishAt
func (s *lifecycleService) SchedulePublish(ctx context.Context, contentID string, publishAt time.Time, actor string) (*domain.Content, error) {
	if !publishAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: got %s", common.ErrInvalidScheduleTime, publishAt.Format(time.RFC3339))
	}

	content, err := s.repo.FindByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	content.Status = domain.StatusScheduled
	content.ScheduledPublishAt = &publishAt
	content.UpdatedAt = now
	content.LastUpdatedBy = domain.UserDetails{UserID: actor}

	if err := s.repo.Update(ctx, content, content.Version); err != nil {
		return nil, err
	}

	logger.GetLogger().Info().
		Str("content_id", contentID).
		Time("publish_at", publishAt).
		Str("user_id", actor).
		Msg("content scheduled for publishing")
	return content, nil
}

// ProcessScheduledContent promotes SCHEDULED items whose publish time has
// arrived. Items older than the safety window are picked up separately so
// sweep downtime does not strand them. Each promotion is independent; one
// item's failure does not block the rest.
func (s *lifecycleService) ProcessScheduledContent(ctx context.Context) error {
	now := time.Now().UTC()
	windowStart := now.Add(-s.safetyWindow)

	currentBatch, err := s.repo.FindByStatusAndScheduleWindow(ctx, domain.StatusScheduled, windowStart, now)
	if err != nil {
		return fmt.Errorf("fetch scheduled batch: %w", err)
	}

	missedBatch, err := s.repo.FindByStatusAndScheduleBefore(ctx, domain.StatusScheduled, windowStart)
	if err != nil {
		return fmt.Errorf("fetch missed batch: %w", err)
	}

	if len(currentBatch) == 0 && len(missedBatch) == 0 {
		return nil
	}

	published := 0
	for _, content := range append(currentBatch, missedBatch...) {
		if err := s.publish(ctx, content, now); err != nil {
			logger.GetLogger().Error().
				Err(err).
				Str("content_id", content.ID).
				Msg("failed to publish scheduled content")
			continue
		}
		published++
	}

	logger.GetLogger().Info().
		Int("current", len(currentBatch)).
		Int("missed", len(missedBatch)).
		Int("published", published).
		Msg("processed scheduled content")
	return nil
}

// publish promotes one scheduled item, preserving the originally intended
// publish time rather than the sweep's wall clock.
func (s *lifecycleService) publish(ctx context.Context, content *domain.Content, now time.Time) error {
	content.Status = domain.StatusPublished
	content.PublishedAt = content.ScheduledPublishAt
	content.UpdatedAt = now
	return s.repo.Update(ctx, content, content.Version)
}

// MoveToBin soft-deletes a content item
func (s *lifecycleService) MoveToBin(ctx context.Context, id, actor string) error {
	content, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if content.Status == domain.StatusDeleted {
		return fmt.Errorf("%w: content is already deleted", common.ErrInvalidState)
	}

	now := time.Now().UTC()
	content.Status = domain.StatusDeleted
	content.DeletedAt = &now
	content.UpdatedAt = now
	content.LastUpdatedBy = domain.UserDetails{UserID: actor}

	if err := s.repo.Update(ctx, content, content.Version); err != nil {
		return err
	}

	logger.GetLogger().Info().
		Str("content_id", id).
		Str("user_id", actor).
		Msg("content moved to bin")
	return nil
}

// Restore brings a binned item back as a DRAFT. The lookup is by id+status
// so a concurrent purge cannot resurrect an already-removed row.
func (s *lifecycleService) Restore(ctx context.Context, id, actor string) (*domain.Content, error) {
	content, err := s.repo.FindByIDAndStatus(ctx, id, domain.StatusDeleted)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	content.Status = domain.StatusDraft
	content.DeletedAt = nil
	content.UpdatedAt = now
	content.LastUpdatedBy = domain.UserDetails{UserID: actor}

	if err := s.repo.Update(ctx, content, content.Version); err != nil {
		return nil, err
	}

	logger.GetLogger().Info().
		Str("content_id", id).
		Str("user_id", actor).
		Msg("content restored from bin")
	return content, nil
}

// HardDelete permanently removes a binned item. Media cleanup is
// best-effort; snapshot and audit history are retained.
func (s *lifecycleService) HardDelete(ctx context.Context, id string) error {
	content, err := s.repo.FindByIDAndStatus(ctx, id, domain.StatusDeleted)
	if err != nil {
		return err
	}

	s.deleteAssociatedMedia(ctx, content)

	if err := s.repo.Delete(ctx, content); err != nil {
		return fmt.Errorf("%w: hard delete of content %s: %v", common.ErrServiceFailure, id, err)
	}

	logger.GetLogger().Info().Str("content_id", id).Msg("content permanently deleted")
	return nil
}

// PurgeExpired removes binned items past the retention window
func (s *lifecycleService) PurgeExpired(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.retention)

	expired, err := s.repo.FindByStatusAndDeletedBefore(ctx, domain.StatusDeleted, cutoff)
	if err != nil {
		return fmt.Errorf("fetch expired bin items: %w", err)
	}
	if len(expired) == 0 {
		logger.GetLogger().Info().Msg("no expired bin items found")
		return nil
	}

	for _, content := range expired {
		s.deleteAssociatedMedia(ctx, content)
	}

	if err := s.repo.DeleteAll(ctx, expired); err != nil {
		return fmt.Errorf("purge expired bin items: %w", err)
	}

	logger.GetLogger().Info().Int("count", len(expired)).Msg("purged expired bin items")
	return nil
}

// ListBin lists the org's soft-deleted content, most recently deleted first
func (s *lifecycleService) ListBin(ctx context.Context, orgID string, page, limit int) ([]*domain.Content, *common.Meta, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.repo.ListByOrgAndStatus(ctx, orgID, domain.StatusDeleted, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return items, common.NewPageMeta(orgID, page, limit, total), nil
}

// ListStatusAudit returns the status change trail for a content item
func (s *lifecycleService) ListStatusAudit(ctx context.Context, contentID string) ([]*domain.ContentStatusAudit, error) {
	return s.audit.FindByContentID(ctx, contentID)
}

// deleteAssociatedMedia asks the media service to drop the item's assets.
// Failure is logged and swallowed; the primary operation proceeds.
func (s *lifecycleService) deleteAssociatedMedia(ctx context.Context, content *domain.Content) {
	mediaIDs := content.MediaIDs()
	if len(mediaIDs) == 0 {
		return
	}
	if err := s.media.BulkDelete(ctx, mediaIDs); err != nil {
		logger.GetLogger().Warn().
			Err(err).
			Str("content_id", content.ID).
			Msg("failed to delete some media, proceeding anyway")
	}
}

package service

import (
	"context"
	"time"

	"github.com/smartcms/smartcontent/internal/domain"
	"github.com/smartcms/smartcontent/internal/repository"
	"github.com/stretchr/testify/mock"
)

// --- Mock ContentRepository ---

type mockContentRepo struct {
	mock.Mock
}

func (m *mockContentRepo) Create(ctx context.Context, content *domain.Content) error {
	return m.Called(ctx, content).Error(0)
}

func (m *mockContentRepo) FindByID(ctx context.Context, id string) (*domain.Content, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Content), args.Error(1)
}

func (m *mockContentRepo) FindByIDAndStatus(ctx context.Context, id string, status domain.ContentStatus) (*domain.Content, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Content), args.Error(1)
}

func (m *mockContentRepo) Update(ctx context.Context, content *domain.Content, expectedVersion int) error {
	return m.Called(ctx, content, expectedVersion).Error(0)
}

func (m *mockContentRepo) Delete(ctx context.Context, content *domain.Content) error {
	return m.Called(ctx, content).Error(0)
}

func (m *mockContentRepo) DeleteAll(ctx context.Context, contents []*domain.Content) error {
	return m.Called(ctx, contents).Error(0)
}

func (m *mockContentRepo) ListByOrgAndStatus(ctx context.Context, orgID string, status domain.ContentStatus, page, limit int) ([]*domain.Content, int64, error) {
	args := m.Called(ctx, orgID, status, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Content), args.Get(1).(int64), args.Error(2)
}

func (m *mockContentRepo) ListByOrgExcludingStatus(ctx context.Context, orgID string, status domain.ContentStatus, page, limit int) ([]*domain.Content, int64, error) {
	args := m.Called(ctx, orgID, status, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Content), args.Get(1).(int64), args.Error(2)
}

func (m *mockContentRepo) FindByStatusAndScheduleWindow(ctx context.Context, status domain.ContentStatus, from, to time.Time) ([]*domain.Content, error) {
	args := m.Called(ctx, status, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Content), args.Error(1)
}

func (m *mockContentRepo) FindByStatusAndScheduleBefore(ctx context.Context, status domain.ContentStatus, cutoff time.Time) ([]*domain.Content, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Content), args.Error(1)
}

func (m *mockContentRepo) FindByStatusAndDeletedBefore(ctx context.Context, status domain.ContentStatus, cutoff time.Time) ([]*domain.Content, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Content), args.Error(1)
}

func (m *mockContentRepo) ExistsBySlug(ctx context.Context, slug, orgID string, status domain.ContentStatus) (bool, error) {
	args := m.Called(ctx, slug, orgID, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockContentRepo) ExistsBySlugExcluding(ctx context.Context, slug, orgID string, status domain.ContentStatus, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, orgID, status, excludeID)
	return args.Bool(0), args.Error(1)
}

// --- Mock ContentHistoryRepository ---

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) Save(ctx context.Context, history *domain.ContentHistory) error {
	return m.Called(ctx, history).Error(0)
}

func (m *mockHistoryRepo) FindByContentID(ctx context.Context, contentID string) ([]*domain.ContentHistory, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ContentHistory), args.Error(1)
}

func (m *mockHistoryRepo) FindByContentIDAndVersion(ctx context.Context, contentID string, version int) (*domain.ContentHistory, error) {
	args := m.Called(ctx, contentID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentHistory), args.Error(1)
}

// --- Mock StatusAuditRepository ---

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Save(ctx context.Context, entry *domain.ContentStatusAudit) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockAuditRepo) FindByContentID(ctx context.Context, contentID string) ([]*domain.ContentStatusAudit, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ContentStatusAudit), args.Error(1)
}

// --- Mock clients ---

type mockAIClient struct {
	mock.Mock
}

func (m *mockAIClient) GenerateSlug(ctx context.Context, input string) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

type mockMediaClient struct {
	mock.Mock
}

func (m *mockMediaClient) BulkDelete(ctx context.Context, mediaIDs []string) error {
	return m.Called(ctx, mediaIDs).Error(0)
}

// --- Passthrough TxRunner ---

// passthroughTx hands the already-built mocks to the transactional function
// so tests can assert on the same expectations either way.
type passthroughTx struct {
	contents repository.ContentRepository
	history  repository.ContentHistoryRepository
}

func (t *passthroughTx) InTx(ctx context.Context, fn func(contents repository.ContentRepository, history repository.ContentHistoryRepository) error) error {
	return fn(t.contents, t.history)
}

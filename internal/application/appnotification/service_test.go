package appnotification

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/scholar-notify/internal/domain"
	"github.com/scholar-notify/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, n *domain.AppNotification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockStore) Get(ctx context.Context, notificationID string) (*domain.AppNotification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.AppNotification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) ListByUser(ctx context.Context, userID string) ([]domain.AppNotification, error) {
	args := m.Called(ctx, userID)
	if n, _ := args.Get(0).([]domain.AppNotification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) MarkRead(ctx context.Context, notificationID string, at time.Time) (*domain.AppNotification, error) {
	args := m.Called(ctx, notificationID, at)
	if n, _ := args.Get(0).(*domain.AppNotification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Delete(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}

var fixedNow = time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

func newMemSvc() (*service, *memory.AppNotificationStore) {
	store := memory.NewAppNotificationStore()
	return &service{repo: store, now: func() time.Time { return fixedNow }}, store
}

func input(userID string) domain.NewAppNotification {
	url := "/interface/projects"
	return domain.NewAppNotification{
		UserID:    userID,
		Kind:      domain.KindService,
		Category:  "project_deleted",
		Title:     "🗑️ Project Deleted • Alpha",
		Message:   `Project "Alpha" deleted. Removed 3 papers.`,
		Priority:  domain.PriorityHigh,
		ActionURL: &url,
		Metadata:  map[string]any{"projectName": "Alpha", "papersCount": 3},
	}
}

// --- Create ---

func TestCreate_StartsUnread(t *testing.T) {
	svc, _ := newMemSvc()
	n, err := svc.Create(context.Background(), input("u1"))
	require.NoError(t, err)

	assert.NotEmpty(t, n.NotificationID)
	assert.Equal(t, domain.StatusUnread, n.Status)
	assert.Nil(t, n.ReadAt)
	assert.Equal(t, fixedNow, n.CreatedAt)
	assert.Equal(t, fixedNow, n.UpdatedAt)
	require.NotNil(t, n.MetadataJSON)
	assert.JSONEq(t, `{"projectName":"Alpha","papersCount":3}`, *n.MetadataJSON)
}

func TestCreate_NilMetadataStaysAbsent(t *testing.T) {
	svc, _ := newMemSvc()
	in := input("u1")
	in.Metadata = nil
	n, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, n.MetadataJSON)
}

func TestCreate_MissingUser(t *testing.T) {
	svc, _ := newMemSvc()
	_, err := svc.Create(context.Background(), input(""))
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreate_StoreFailure(t *testing.T) {
	repo := &mockStore{}
	repo.On("Put", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	_, err := NewService(repo).Create(context.Background(), input("u1"))
	assert.ErrorContains(t, err, "persist app notification: disk full")
}

// --- MarkRead ---

func TestMarkRead_SetsReadAndTimestamps(t *testing.T) {
	svc, _ := newMemSvc()
	n, err := svc.Create(context.Background(), input("u1"))
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	svc.now = func() time.Time { return later }
	got, err := svc.MarkRead(context.Background(), n.NotificationID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRead, got.Status)
	require.NotNil(t, got.ReadAt)
	assert.Equal(t, later, *got.ReadAt)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, fixedNow, got.CreatedAt)
}

func TestMarkRead_IsIdempotent(t *testing.T) {
	svc, _ := newMemSvc()
	n, err := svc.Create(context.Background(), input("u1"))
	require.NoError(t, err)

	first, err := svc.MarkRead(context.Background(), n.NotificationID)
	require.NoError(t, err)
	second, err := svc.MarkRead(context.Background(), n.NotificationID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRead, second.Status)
	assert.False(t, second.ReadAt.Before(*first.ReadAt))
}

func TestMarkRead_UnknownID(t *testing.T) {
	repo := &mockStore{}
	repo.On("Get", mock.Anything, "nope").Return(nil, fmt.Errorf("x: %w", domain.ErrNotFound))

	_, err := NewService(repo).MarkRead(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

// --- MarkMultipleRead ---

func TestMarkMultipleRead_PerIDResults(t *testing.T) {
	svc, store := newMemSvc()
	a, err := svc.Create(context.Background(), input("u1"))
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), input("u1"))
	require.NoError(t, err)

	results := svc.MarkMultipleRead(context.Background(), []string{a.NotificationID, "ghost", b.NotificationID})
	require.Len(t, results, 3)
	assert.Equal(t, domain.MarkReadResult{ID: a.NotificationID, Status: domain.MarkReadOK}, results[0])
	assert.Equal(t, domain.MarkReadResult{ID: "ghost", Status: domain.MarkReadNotFound}, results[1])
	assert.Equal(t, domain.MarkReadOK, results[2].Status)

	for _, nid := range []string{a.NotificationID, b.NotificationID} {
		got, err := store.Get(context.Background(), nid)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRead, got.Status)
	}
}

func TestMarkMultipleRead_StoreErrorDoesNotStopBatch(t *testing.T) {
	repo := &mockStore{}
	ok := &domain.AppNotification{NotificationID: "ok"}
	repo.On("Get", mock.Anything, "bad").Return(nil, errors.New("timeout"))
	repo.On("Get", mock.Anything, "ok").Return(ok, nil)
	repo.On("MarkRead", mock.Anything, "ok", mock.Anything).Return(ok, nil)

	results := NewService(repo).MarkMultipleRead(context.Background(), []string{"bad", "ok"})
	require.Len(t, results, 2)
	assert.Equal(t, domain.MarkReadFailed, results[0].Status)
	assert.Equal(t, "timeout", results[0].Error)
	assert.Equal(t, domain.MarkReadOK, results[1].Status)
}

func TestMarkMultipleRead_Empty(t *testing.T) {
	svc, _ := newMemSvc()
	results := svc.MarkMultipleRead(context.Background(), nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

// --- ListByUser / Delete ---

func TestListByUser_OnlyThatUser(t *testing.T) {
	svc, _ := newMemSvc()
	_, err := svc.Create(context.Background(), input("u1"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), input("u2"))
	require.NoError(t, err)

	got, err := svc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].UserID)

	empty, err := svc.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDelete_RemovesAndIsIdempotent(t *testing.T) {
	svc, _ := newMemSvc()
	n, err := svc.Create(context.Background(), input("u1"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), n.NotificationID))
	require.NoError(t, svc.Delete(context.Background(), n.NotificationID))
	require.NoError(t, svc.Delete(context.Background(), "never-existed"))

	got, err := svc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

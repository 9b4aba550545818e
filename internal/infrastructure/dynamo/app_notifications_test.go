package dynamo

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/scholar-notify/internal/domain"
	"github.com/scholar-notify/internal/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unread(userID string) *domain.AppNotification {
	return unreadAt(userID, time.Now().UTC())
}

func unreadAt(userID string, now time.Time) *domain.AppNotification {
	return &domain.AppNotification{
		NotificationID: id.New(),
		UserID:         userID,
		Kind:           domain.KindService,
		Category:       "WEB_SEARCH_COMPLETED",
		Title:          "🔍 Research Search Complete",
		Message:        "Academic paper search completed. Found 0 papers.",
		Status:         domain.StatusUnread,
		ActionURL:      aws.String("/interface/projects"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestAppNotificationRepo_PutGet(t *testing.T) {
	repo := NewAppNotificationRepo(newFakeAPI(fieldNotificationID), "feed")
	n := unread("u1")
	require.NoError(t, repo.Put(context.Background(), n))

	got, err := repo.Get(context.Background(), n.NotificationID)
	require.NoError(t, err)
	assert.Equal(t, n.Title, got.Title)
	assert.Equal(t, "/interface/projects", *got.ActionURL)
	assert.Nil(t, got.ReadAt)
	assert.True(t, n.CreatedAt.Equal(got.CreatedAt))
}

func TestAppNotificationRepo_Get_Missing(t *testing.T) {
	repo := NewAppNotificationRepo(newFakeAPI(fieldNotificationID), "feed")
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppNotificationRepo_Put_Duplicate(t *testing.T) {
	repo := NewAppNotificationRepo(newFakeAPI(fieldNotificationID), "feed")
	n := unread("u1")
	require.NoError(t, repo.Put(context.Background(), n))
	assert.ErrorIs(t, repo.Put(context.Background(), n), domain.ErrConflict)
}

func TestAppNotificationRepo_ListByUser_NewestFirst(t *testing.T) {
	api := newFakeAPI(fieldNotificationID)
	repo := NewAppNotificationRepo(api, "feed")
	base := time.Now().UTC()
	older := unreadAt("u1", base)
	require.NoError(t, repo.Put(context.Background(), older))
	newer := unreadAt("u1", base.Add(time.Microsecond))
	require.NoError(t, repo.Put(context.Background(), newer))

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.NotificationID, got[0].NotificationID)
	assert.Equal(t, indexNotificationsByUser, *api.queries[0].IndexName)
}

func TestAppNotificationRepo_ListByUser_BackToBackEntriesKeepOrder(t *testing.T) {
	repo := NewAppNotificationRepo(newFakeAPI(fieldNotificationID), "feed")
	base := time.Now().UTC()
	for i := 0; i < 20; i++ {
		require.NoError(t, repo.Put(context.Background(), unreadAt("u1", base.Add(time.Duration(i)*time.Microsecond))))
	}

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 20)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt), "entry %d out of order", i)
	}
}

func TestAppNotificationRepo_MarkRead_KeepsPosition(t *testing.T) {
	repo := NewAppNotificationRepo(newFakeAPI(fieldNotificationID), "feed")
	base := time.Now().UTC()
	older := unreadAt("u1", base)
	newer := unreadAt("u1", base.Add(time.Second))
	require.NoError(t, repo.Put(context.Background(), older))
	require.NoError(t, repo.Put(context.Background(), newer))

	_, err := repo.MarkRead(context.Background(), older.NotificationID, base.Add(time.Minute))
	require.NoError(t, err)

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.NotificationID, got[0].NotificationID)
}

func TestAppNotificationRepo_MarkRead(t *testing.T) {
	repo := NewAppNotificationRepo(newFakeAPI(fieldNotificationID), "feed")
	n := unread("u1")
	require.NoError(t, repo.Put(context.Background(), n))

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got, err := repo.MarkRead(context.Background(), n.NotificationID, at)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRead, got.Status)
	require.NotNil(t, got.ReadAt)
	assert.True(t, at.Equal(*got.ReadAt))
	assert.True(t, at.Equal(got.UpdatedAt))
	assert.Equal(t, n.Title, got.Title)
}

func TestAppNotificationRepo_MarkRead_Missing(t *testing.T) {
	repo := NewAppNotificationRepo(newFakeAPI(fieldNotificationID), "feed")
	_, err := repo.MarkRead(context.Background(), "nope", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppNotificationRepo_Delete_Idempotent(t *testing.T) {
	repo := NewAppNotificationRepo(newFakeAPI(fieldNotificationID), "feed")
	n := unread("u1")
	require.NoError(t, repo.Put(context.Background(), n))

	require.NoError(t, repo.Delete(context.Background(), n.NotificationID))
	require.NoError(t, repo.Delete(context.Background(), n.NotificationID))
	_, err := repo.Get(context.Background(), n.NotificationID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

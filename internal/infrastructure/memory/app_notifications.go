package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/scholar-notify/internal/domain"
)

// AppNotificationStore keeps feed entries in a map guarded by a RWMutex.
// Callers always receive copies.
type AppNotificationStore struct {
	mu    sync.RWMutex
	items map[string]domain.AppNotification
}

func NewAppNotificationStore() *AppNotificationStore {
	return &AppNotificationStore{items: make(map[string]domain.AppNotification)}
}

func (s *AppNotificationStore) Put(_ context.Context, n *domain.AppNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[n.NotificationID]; exists {
		return fmt.Errorf("app notification %s: %w", n.NotificationID, domain.ErrConflict)
	}
	s.items[n.NotificationID] = *n
	return nil
}

func (s *AppNotificationStore) Get(_ context.Context, notificationID string) (*domain.AppNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.items[notificationID]
	if !ok {
		return nil, fmt.Errorf("app notification %s: %w", notificationID, domain.ErrNotFound)
	}
	return &n, nil
}

func (s *AppNotificationStore) ListByUser(_ context.Context, userID string) ([]domain.AppNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.AppNotification{}
	for _, n := range s.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].NotificationID, out[j].NotificationID)
	})
	return out, nil
}

// MarkRead sets READ and stamps both timestamps; the last writer wins.
func (s *AppNotificationStore) MarkRead(_ context.Context, notificationID string, at time.Time) (*domain.AppNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.items[notificationID]
	if !ok {
		return nil, fmt.Errorf("app notification %s: %w", notificationID, domain.ErrNotFound)
	}
	readAt := at
	n.Status = domain.StatusRead
	n.ReadAt = &readAt
	n.UpdatedAt = at
	s.items[notificationID] = n
	return &n, nil
}

func (s *AppNotificationStore) Delete(_ context.Context, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, notificationID)
	return nil
}

// newer orders by creation time descending, breaking ties on the ULID.
func newer(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA > idB
}

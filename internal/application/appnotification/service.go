package appnotification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scholar-notify/internal/domain"
	"github.com/scholar-notify/internal/pkg/id"
)

type notificationStore interface {
	Put(ctx context.Context, n *domain.AppNotification) error
	Get(ctx context.Context, notificationID string) (*domain.AppNotification, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AppNotification, error)
	MarkRead(ctx context.Context, notificationID string, at time.Time) (*domain.AppNotification, error)
	Delete(ctx context.Context, notificationID string) error
}

// Service manages a user's in-app feed.
type Service interface {
	ListByUser(ctx context.Context, userID string) ([]domain.AppNotification, error)
	Create(ctx context.Context, in domain.NewAppNotification) (*domain.AppNotification, error)
	MarkRead(ctx context.Context, notificationID string) (*domain.AppNotification, error)
	MarkMultipleRead(ctx context.Context, ids []string) []domain.MarkReadResult
	Delete(ctx context.Context, notificationID string) error
}

type service struct {
	repo notificationStore
	now  func() time.Time
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.AppNotification, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.AppNotification{}
	}
	return items, nil
}

// Create stores a new UNREAD entry. Metadata is kept as its JSON text.
func (s *service) Create(ctx context.Context, in domain.NewAppNotification) (*domain.AppNotification, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user id is required: %w", domain.ErrBadRequest)
	}
	meta, err := domain.MarshalMetadata(in.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", domain.ErrBadRequest)
	}
	now := s.now().UTC()
	n := &domain.AppNotification{
		NotificationID:   id.New(),
		UserID:           in.UserID,
		Kind:             in.Kind,
		Category:         in.Category,
		Title:            in.Title,
		Message:          in.Message,
		Priority:         in.Priority,
		Status:           domain.StatusUnread,
		ActionURL:        in.ActionURL,
		ActionText:       in.ActionText,
		RelatedProjectID: in.RelatedProjectID,
		RelatedPaperID:   in.RelatedPaperID,
		RelatedTaskID:    in.RelatedTaskID,
		MetadataJSON:     meta,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, fmt.Errorf("persist app notification: %w", err)
	}
	return n, nil
}

// MarkRead flips the entry to READ. Marking an already-read entry refreshes
// readAt and updatedAt; concurrent calls resolve last-write-wins.
func (s *service) MarkRead(ctx context.Context, notificationID string) (*domain.AppNotification, error) {
	if _, err := s.repo.Get(ctx, notificationID); err != nil {
		return nil, err
	}
	return s.repo.MarkRead(ctx, notificationID, s.now().UTC())
}

// MarkMultipleRead applies MarkRead to each id independently. A missing or
// failing id never prevents the others from being marked.
func (s *service) MarkMultipleRead(ctx context.Context, ids []string) []domain.MarkReadResult {
	results := make([]domain.MarkReadResult, 0, len(ids))
	for _, nid := range ids {
		_, err := s.MarkRead(ctx, nid)
		switch {
		case err == nil:
			results = append(results, domain.MarkReadResult{ID: nid, Status: domain.MarkReadOK})
		case errors.Is(err, domain.ErrNotFound):
			results = append(results, domain.MarkReadResult{ID: nid, Status: domain.MarkReadNotFound})
		default:
			results = append(results, domain.MarkReadResult{ID: nid, Status: domain.MarkReadFailed, Error: err.Error()})
		}
	}
	return results
}

// Delete removes the entry. Deleting an unknown id succeeds.
func (s *service) Delete(ctx context.Context, notificationID string) error {
	return s.repo.Delete(ctx, notificationID)
}

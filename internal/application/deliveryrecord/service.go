package deliveryrecord

import (
	"context"
	"fmt"
	"time"

	"github.com/scholar-notify/internal/domain"
	"github.com/scholar-notify/internal/pkg/id"
)

type recordStore interface {
	Append(ctx context.Context, rec *domain.DeliveryRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.DeliveryRecord, error)
}

// Service is the append-only audit log of dispatch attempts.
type Service interface {
	Append(ctx context.Context, rec *domain.DeliveryRecord) (*domain.DeliveryRecord, error)
	ListByUser(ctx context.Context, userID string) ([]domain.DeliveryRecord, error)
}

type service struct {
	repo recordStore
	now  func() time.Time
}

func NewService(repo recordStore) Service {
	return &service{repo: repo, now: time.Now}
}

// Append assigns a fresh id, fills a missing creation time, checks the status
// invariant and stores the record. A caller-supplied id is ignored.
func (s *service) Append(ctx context.Context, rec *domain.DeliveryRecord) (*domain.DeliveryRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil delivery record: %w", domain.ErrBadRequest)
	}
	if !rec.Valid() {
		return nil, fmt.Errorf("delivery record status %q is inconsistent: %w", rec.Status, domain.ErrBadRequest)
	}
	out := *rec
	out.RecordID = id.New()
	if out.CreatedAt.IsZero() {
		out.CreatedAt = s.now().UTC()
	}
	if err := s.repo.Append(ctx, &out); err != nil {
		return nil, fmt.Errorf("persist delivery record: %w", err)
	}
	return &out, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.DeliveryRecord, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.DeliveryRecord{}
	}
	return records, nil
}

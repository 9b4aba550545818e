// Package memory provides in-process implementations of the notification stores
// for local development and tests. Nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/scholar-notify/internal/domain"
)

// DeliveryRecordStore keeps delivery records in an append-only map.
type DeliveryRecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.DeliveryRecord
}

func NewDeliveryRecordStore() *DeliveryRecordStore {
	return &DeliveryRecordStore{records: make(map[string]domain.DeliveryRecord)}
}

func (s *DeliveryRecordStore) Append(_ context.Context, rec *domain.DeliveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.RecordID]; exists {
		return fmt.Errorf("delivery record %s: %w", rec.RecordID, domain.ErrConflict)
	}
	s.records[rec.RecordID] = *rec
	return nil
}

// ListByUser returns the user's records newest first.
func (s *DeliveryRecordStore) ListByUser(_ context.Context, userID string) ([]domain.DeliveryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.DeliveryRecord{}
	for _, rec := range s.records {
		if rec.UserID != nil && *rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].RecordID, out[j].RecordID)
	})
	return out, nil
}

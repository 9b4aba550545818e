package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/scholar-notify/internal/domain"
)

var (
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "Notification requests processed, by type and outcome.",
	}, []string{"type", "outcome"})

	persistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_persist_failures_total",
		Help: "Delivery record or in-app notification writes that failed during dispatch.",
	}, []string{"store"})
)

const (
	storeRecords = "delivery_records"
	storeFeed    = "app_notifications"
)

// typeLabel keeps label cardinality bounded: unrecognised types share one series.
func typeLabel(raw string) string {
	if t, ok := domain.ParseNotificationType(raw); ok {
		return string(t)
	}
	return "UNKNOWN"
}

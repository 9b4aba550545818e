// Package queue turns raw queue payloads into dispatcher calls.
package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/scholar-notify/internal/application/dispatch"
	"github.com/scholar-notify/internal/domain"
)

type dispatcher interface {
	Dispatch(ctx context.Context, req domain.NotificationRequest) dispatch.Outcome
}

// Listener decodes notification requests and hands them to the dispatcher.
type Listener struct {
	dispatcher dispatcher
	log        *slog.Logger
}

func NewListener(d dispatcher, log *slog.Logger) *Listener {
	if log == nil {
		log = slog.Default()
	}
	return &Listener{dispatcher: d, log: log}
}

// Handle processes one message. A payload that is not a JSON request object is
// logged and dropped: redelivering it would fail the same way.
func (l *Listener) Handle(ctx context.Context, data []byte) {
	var req domain.NotificationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		l.log.Error("discarding undecodable notification request", "err", err, "bytes", len(data))
		return
	}
	l.log.Info("received notification request", "type", req.NotificationType, "recipient", req.RecipientEmail)
	outcome := l.dispatcher.Dispatch(ctx, req)
	l.log.Debug("notification request processed", "type", req.NotificationType, "outcome", outcome)
}

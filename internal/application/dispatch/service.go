package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scholar-notify/internal/domain"
	"github.com/scholar-notify/internal/pkg/templatedata"
)

// Outcome is what happened to one request.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Sender renders and delivers one email.
type Sender interface {
	Send(ctx context.Context, e domain.Email) error
}

type recordAppender interface {
	Append(ctx context.Context, rec *domain.DeliveryRecord) (*domain.DeliveryRecord, error)
}

type feedCreator interface {
	Create(ctx context.Context, in domain.NewAppNotification) (*domain.AppNotification, error)
}

// Deps are the collaborators of a Dispatcher.
type Deps struct {
	Sender  Sender
	Records recordAppender
	Feed    feedCreator
	AppName string
	Logger  *slog.Logger
	Now     func() time.Time
}

// Dispatcher routes notification requests to delivery and records the outcome.
// It holds no state between requests and is safe for concurrent use.
type Dispatcher struct {
	sender  Sender
	records recordAppender
	feed    feedCreator
	appName string
	log     *slog.Logger
	now     func() time.Time
}

func New(d Deps) *Dispatcher {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Dispatcher{
		sender:  d.Sender,
		records: d.Records,
		feed:    d.Feed,
		appName: d.AppName,
		log:     d.Logger,
		now:     d.Now,
	}
}

// Dispatch processes req end to end. It never returns an error and never panics:
// every failure ends up in the log and, where possible, in a FAILED delivery record.
// Cancelling ctx does not interrupt a dispatch that has started.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.NotificationRequest) (out Outcome) {
	ctx = context.WithoutCancel(ctx)
	log := d.requestLogger(req)

	subject, template := req.NotificationType, unknownTemplate
	defer func() {
		if r := recover(); r != nil {
			log.Error("dispatch panicked", "panic", r)
			d.recordFailure(ctx, log, req, subject, template, fmt.Errorf("panic: %v", r))
			out = OutcomeFailed
		}
		dispatchTotal.WithLabelValues(typeLabel(req.NotificationType), string(out)).Inc()
	}()

	t, ok := domain.ParseNotificationType(req.NotificationType)
	if !ok {
		err := fmt.Errorf("%w: %q", domain.ErrUnsupportedType, req.NotificationType)
		log.Warn("unknown notification type")
		d.recordFailure(ctx, log, req, subject, template, err)
		return OutcomeFailed
	}

	rt, ok := routes[t]
	if !ok {
		log.Info("no delivery defined for notification type")
		return OutcomeSkipped
	}
	subject, template = fmt.Sprintf(rt.subject, d.appName), rt.template

	err := d.sender.Send(ctx, domain.Email{
		To:       req.RecipientEmail,
		ToName:   req.RecipientName,
		Subject:  subject,
		Template: template,
		Data:     req.TemplateData,
	})
	if err != nil {
		log.Error("delivery failed", "template", template, "err", err)
		d.recordFailure(ctx, log, req, subject, template, err)
		return OutcomeFailed
	}

	d.isolate(log, storeRecords, func() error {
		_, err := d.records.Append(ctx, domain.NewSentRecord(req, subject, template, d.snapshot(log, req), d.now().UTC()))
		return err
	})
	d.isolate(log, storeFeed, func() error {
		return d.createFeedEntry(ctx, log, req, rt.feed)
	})
	log.Info("notification sent", "template", template)
	return OutcomeSent
}

func (d *Dispatcher) createFeedEntry(ctx context.Context, log *slog.Logger, req domain.NotificationRequest, ft feedTemplate) error {
	if !req.HasUser() {
		log.Debug("request has no user id, skipping in-app notification")
		return nil
	}
	actionURL, actionText := ft.actionURL, ft.actionText
	_, err := d.feed.Create(ctx, domain.NewAppNotification{
		UserID:           *req.UserID,
		Kind:             domain.KindService,
		Category:         ft.category,
		Title:            ft.title(req.TemplateData, d.appName),
		Message:          ft.message(req.TemplateData, d.appName),
		Priority:         ft.priority,
		ActionURL:        &actionURL,
		ActionText:       &actionText,
		RelatedProjectID: optionalString(req.TemplateData, templatedata.ProjectIDKeys),
		RelatedPaperID:   optionalString(req.TemplateData, templatedata.PaperIDKeys),
		Metadata:         req.TemplateData,
	})
	return err
}

func (d *Dispatcher) recordFailure(ctx context.Context, log *slog.Logger, req domain.NotificationRequest, subject, template string, cause error) {
	d.isolate(log, storeRecords, func() error {
		_, err := d.records.Append(ctx, domain.NewFailedRecord(req, subject, template, d.snapshot(log, req), cause, d.now().UTC()))
		return err
	})
}

// isolate runs one persistence step so that neither its error nor a panic
// reaches the caller.
func (d *Dispatcher) isolate(log *slog.Logger, store string, step func() error) {
	defer func() {
		if r := recover(); r != nil {
			persistFailures.WithLabelValues(store).Inc()
			log.Error("persistence step panicked", "store", store, "panic", r)
		}
	}()
	if err := step(); err != nil {
		persistFailures.WithLabelValues(store).Inc()
		log.Error("persistence step failed", "store", store, "err", err)
	}
}

// snapshot serialises the template data for the audit record. A payload that
// cannot be encoded is recorded as absent.
func (d *Dispatcher) snapshot(log *slog.Logger, req domain.NotificationRequest) *string {
	s, err := req.TemplateDataJSON()
	if err != nil {
		log.Warn("template data not serialisable", "err", err)
		return nil
	}
	return s
}

func (d *Dispatcher) requestLogger(req domain.NotificationRequest) *slog.Logger {
	userID := ""
	if req.HasUser() {
		userID = *req.UserID
	}
	return d.log.With("type", req.NotificationType, "recipient", req.RecipientEmail, "user_id", userID)
}

package domain

import "time"

type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "SENT"
	DeliveryFailed DeliveryStatus = "FAILED"
)

// DeliveryRecord is an append-only audit entry for one dispatch attempt.
// Type holds the raw inbound string, including values the dispatcher does not recognise.
type DeliveryRecord struct {
	RecordID         string         `json:"id" dynamodbav:"record_id"`
	UserID           *string        `json:"userId" dynamodbav:"user_id,omitempty"`
	RecipientEmail   string         `json:"recipientEmail" dynamodbav:"recipient_email"`
	RecipientName    string         `json:"recipientName" dynamodbav:"recipient_name"`
	Type             string         `json:"type" dynamodbav:"type"`
	Subject          string         `json:"subject" dynamodbav:"subject"`
	TemplateName     string         `json:"templateName" dynamodbav:"template_name"`
	TemplateDataJSON *string        `json:"templateDataJson" dynamodbav:"template_data,omitempty"`
	Status           DeliveryStatus `json:"status" dynamodbav:"status"`
	ErrorMessage     *string        `json:"errorMessage" dynamodbav:"error_message,omitempty"`
	CreatedAt        time.Time      `json:"createdAt" dynamodbav:"created_at"`
	SentAt           *time.Time     `json:"sentAt" dynamodbav:"sent_at,omitempty"`
}

// Valid checks the status invariant: SENT carries sentAt and no error,
// FAILED carries an error message and no sentAt.
func (r *DeliveryRecord) Valid() bool {
	switch r.Status {
	case DeliverySent:
		return r.SentAt != nil && r.ErrorMessage == nil
	case DeliveryFailed:
		return r.ErrorMessage != nil && r.SentAt == nil
	default:
		return false
	}
}

// NewSentRecord builds the SENT record for a delivered request.
func NewSentRecord(req NotificationRequest, subject, templateName string, snapshot *string, at time.Time) *DeliveryRecord {
	rec := baseRecord(req, subject, templateName, snapshot, at)
	rec.Status = DeliverySent
	rec.SentAt = &at
	return rec
}

// NewFailedRecord builds the FAILED record for a request that could not be delivered.
func NewFailedRecord(req NotificationRequest, subject, templateName string, snapshot *string, cause error, at time.Time) *DeliveryRecord {
	rec := baseRecord(req, subject, templateName, snapshot, at)
	rec.Status = DeliveryFailed
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	rec.ErrorMessage = &msg
	return rec
}

func baseRecord(req NotificationRequest, subject, templateName string, snapshot *string, at time.Time) *DeliveryRecord {
	var userID *string
	if req.HasUser() {
		u := *req.UserID
		userID = &u
	}
	return &DeliveryRecord{
		UserID:           userID,
		RecipientEmail:   req.RecipientEmail,
		RecipientName:    req.RecipientName,
		Type:             req.NotificationType,
		Subject:          subject,
		TemplateName:     templateName,
		TemplateDataJSON: snapshot,
		CreatedAt:        at,
	}
}

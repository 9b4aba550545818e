package domain

import (
	"encoding/json"
	"time"
)

// NotificationType enumerates the request types the dispatcher knows how to route.
type NotificationType string

const (
	TypeWelcomeEmail          NotificationType = "WELCOME_EMAIL"
	TypePasswordReset         NotificationType = "PASSWORD_RESET"
	TypeEmailVerification     NotificationType = "EMAIL_VERIFICATION"
	TypeAccountUpdate         NotificationType = "ACCOUNT_UPDATE"
	TypeWebSearchCompleted    NotificationType = "WEB_SEARCH_COMPLETED"
	TypeSummarizationComplete NotificationType = "SUMMARIZATION_COMPLETED"
	TypeProjectDeleted        NotificationType = "PROJECT_DELETED"
	TypeGapAnalysisCompleted  NotificationType = "GAP_ANALYSIS_COMPLETED"
)

var knownTypes = map[NotificationType]struct{}{
	TypeWelcomeEmail:          {},
	TypePasswordReset:         {},
	TypeEmailVerification:     {},
	TypeAccountUpdate:         {},
	TypeWebSearchCompleted:    {},
	TypeSummarizationComplete: {},
	TypeProjectDeleted:        {},
	TypeGapAnalysisCompleted:  {},
}

// ParseNotificationType matches s exactly against the known types.
func ParseNotificationType(s string) (NotificationType, bool) {
	t := NotificationType(s)
	if _, ok := knownTypes[t]; !ok {
		return "", false
	}
	return t, true
}

// NotificationRequest is one inbound queue message. It is never mutated after decoding.
type NotificationRequest struct {
	NotificationType string         `json:"notificationType"`
	RecipientEmail   string         `json:"recipientEmail"`
	RecipientName    string         `json:"recipientName"`
	Timestamp        *time.Time     `json:"timestamp,omitempty"`
	TemplateData     map[string]any `json:"templateData"`
	UserID           *string        `json:"userId,omitempty"`
}

// HasUser reports whether the request carries a non-empty user id.
func (r NotificationRequest) HasUser() bool {
	return r.UserID != nil && *r.UserID != ""
}

// TemplateDataJSON serialises the template payload for audit snapshots.
// A nil payload yields nil.
func (r NotificationRequest) TemplateDataJSON() (*string, error) {
	return marshalOptional(r.TemplateData)
}

func marshalOptional(data map[string]any) (*string, error) {
	if data == nil {
		return nil, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// MarshalMetadata serialises arbitrary metadata to its stored text form.
func MarshalMetadata(data map[string]any) (*string, error) {
	return marshalOptional(data)
}

// Email is a rendered-and-sent unit handed to the mail transport.
type Email struct {
	To       string
	ToName   string
	Subject  string
	Template string
	Data     map[string]any
}

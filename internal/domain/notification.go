package domain

import "time"

// NotificationKind separates service-generated entries from system-wide announcements.
type NotificationKind string

const (
	KindService NotificationKind = "SERVICE"
	KindSystem  NotificationKind = "SYSTEM"
)

type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

type ReadStatus string

const (
	StatusUnread ReadStatus = "UNREAD"
	StatusRead   ReadStatus = "READ"
)

// AppNotification is one entry of a user's in-app feed.
// It is created UNREAD and only ever mutated by mark-read.
type AppNotification struct {
	NotificationID   string           `json:"id" dynamodbav:"notification_id"`
	UserID           string           `json:"userId" dynamodbav:"user_id"`
	Kind             NotificationKind `json:"type" dynamodbav:"type"`
	Category         string           `json:"category" dynamodbav:"category"`
	Title            string           `json:"title" dynamodbav:"title"`
	Message          string           `json:"message" dynamodbav:"message"`
	Priority         Priority         `json:"priority,omitempty" dynamodbav:"priority,omitempty"`
	Status           ReadStatus       `json:"status" dynamodbav:"status"`
	ActionURL        *string          `json:"actionUrl" dynamodbav:"action_url,omitempty"`
	ActionText       *string          `json:"actionText" dynamodbav:"action_text,omitempty"`
	RelatedProjectID *string          `json:"relatedProjectId" dynamodbav:"related_project_id,omitempty"`
	RelatedPaperID   *string          `json:"relatedPaperId" dynamodbav:"related_paper_id,omitempty"`
	RelatedTaskID    *string          `json:"relatedTaskId" dynamodbav:"related_task_id,omitempty"`
	MetadataJSON     *string          `json:"metadataJson" dynamodbav:"metadata_json,omitempty"`
	CreatedAt        time.Time        `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" dynamodbav:"updated_at"`
	ReadAt           *time.Time       `json:"readAt" dynamodbav:"read_at,omitempty"`
}

// NewAppNotification is the input for creating a feed entry, either from the
// dispatcher or from any producer calling the feed API.
type NewAppNotification struct {
	UserID           string           `json:"userId" validate:"required,uuid"`
	Kind             NotificationKind `json:"type" validate:"required,oneof=SERVICE SYSTEM"`
	Category         string           `json:"category" validate:"max=128"`
	Title            string           `json:"title" validate:"max=255"`
	Message          string           `json:"message"`
	Priority         Priority         `json:"priority" validate:"omitempty,oneof=URGENT HIGH MEDIUM LOW"`
	ActionURL        *string          `json:"actionUrl" validate:"omitempty,max=255"`
	ActionText       *string          `json:"actionText" validate:"omitempty,max=64"`
	RelatedProjectID *string          `json:"relatedProjectId" validate:"omitempty,max=64"`
	RelatedPaperID   *string          `json:"relatedPaperId" validate:"omitempty,max=64"`
	RelatedTaskID    *string          `json:"relatedTaskId" validate:"omitempty,max=64"`
	Metadata         map[string]any   `json:"metadata"`
}

// MarkReadResult reports the outcome of one id inside a batch mark-read.
type MarkReadResult struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "read" | "not_found" | "error"
	Error  string `json:"error,omitempty"`
}

const (
	MarkReadOK       = "read"
	MarkReadNotFound = "not_found"
	MarkReadFailed   = "error"
)

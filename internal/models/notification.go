package models

import (
	"time"

	"gorm.io/datatypes"
)

// RecipientKind tags the recipient reference: a notification belongs to
// either a candidate or a recruiter profile, never to a bare user row.
type RecipientKind string

const (
	RecipientCandidate RecipientKind = "candidate"
	RecipientRecruiter RecipientKind = "recruiter"
)

type NotificationType string

const (
	NotificationInterviewRequest   NotificationType = "interview_request"
	NotificationInterviewAccepted  NotificationType = "interview_accepted"
	NotificationInterviewRejected  NotificationType = "interview_rejected"
	NotificationInterviewCancelled NotificationType = "interview_cancelled"
	NotificationInterviewReminder  NotificationType = "interview_reminder"
	NotificationFeedbackSubmitted  NotificationType = "feedback_submitted"
	NotificationFeedbackShared     NotificationType = "feedback_shared"
	NotificationSystem             NotificationType = "system"
)

// Notification is immutable after creation except for IsRead/ReadAt.
// Title and Message are rendered once and never updated to reflect later
// state of the related entity.
type Notification struct {
	BaseModel
	RecipientID   string           `gorm:"type:uuid;not null;index:idx_notifications_recipient" json:"recipient_id"`
	RecipientKind RecipientKind    `gorm:"not null;index:idx_notifications_recipient" json:"recipient_kind"`
	Type          NotificationType `gorm:"not null" json:"type"`
	Title         string           `gorm:"not null" json:"title"`
	Message       string           `gorm:"not null" json:"message"`

	// RelatedKind/RelatedID are a non-owning back-reference used only
	// for client navigation, never dereferenced server-side.
	RelatedKind string `json:"related_kind,omitempty"`
	RelatedID   string `gorm:"type:uuid" json:"related_id,omitempty"`

	Data      datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	ActionURL string         `json:"action_url,omitempty"`
	IsRead    bool           `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}

// ValidNotificationType reports whether t belongs to the fixed enumeration.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationInterviewRequest, NotificationInterviewAccepted,
		NotificationInterviewRejected, NotificationInterviewCancelled,
		NotificationInterviewReminder, NotificationFeedbackSubmitted,
		NotificationFeedbackShared, NotificationSystem:
		return true
	}
	return false
}

// ValidRecipientKind reports whether k is a known recipient kind.
func ValidRecipientKind(k RecipientKind) bool {
	return k == RecipientCandidate || k == RecipientRecruiter
}

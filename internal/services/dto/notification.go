package dto

import "time"

type CreateNotificationRequest struct {
	RecipientID   string                 `json:"recipient_id" validate:"required"`
	RecipientKind string                 `json:"recipient_kind" validate:"required,oneof=candidate recruiter"`
	Type          string                 `json:"type" validate:"required"`
	Title         string                 `json:"title" validate:"required"`
	Message       string                 `json:"message" validate:"required"`
	RelatedKind   string                 `json:"related_kind,omitempty"`
	RelatedID     string                 `json:"related_id,omitempty"`
	ActionURL     string                 `json:"action_url,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
}

// NotificationResponse is both the HTTP representation and the payload of
// the realtime "notification" broadcast; clients filter on recipient_id.
type NotificationResponse struct {
	ID            string                 `json:"id"`
	RecipientID   string                 `json:"recipient_id"`
	RecipientKind string                 `json:"recipient_kind"`
	Type          string                 `json:"type"`
	Title         string                 `json:"title"`
	Message       string                 `json:"message"`
	RelatedKind   string                 `json:"related_kind,omitempty"`
	RelatedID     string                 `json:"related_id,omitempty"`
	ActionURL     string                 `json:"action_url,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
	IsRead        bool                   `json:"is_read"`
	ReadAt        *time.Time             `json:"read_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int                     `json:"total"`
	Page          int                     `json:"page,omitempty"`
	PageSize      int                     `json:"page_size,omitempty"`
}

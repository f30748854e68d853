package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendNotificationRequest struct {
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Type    string     `json:"type"`
	EventID *uuid.UUID `json:"event_id"`
}

type PushResultsResponse struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Total      int `json:"total"`
}

type SendNotificationResponse struct {
	NotificationID uuid.UUID            `json:"notification_id"`
	RecipientCount int                  `json:"recipient_count"`
	PushResults    *PushResultsResponse `json:"push_results,omitempty"`
}

type EventSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type InboxItemResponse struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Type      string        `json:"type"`
	Event     *EventSummary `json:"event,omitempty"`
	Read      bool          `json:"read"`
	CreatedAt time.Time     `json:"created_at"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type SubscribeRequest struct {
	Subscription struct {
		Endpoint string           `json:"endpoint"`
		Keys     SubscriptionKeys `json:"keys"`
	} `json:"subscription"`
}

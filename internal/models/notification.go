package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeGeneralAnnouncement = "GENERAL_ANNOUNCEMENT"
	NotificationTypeEventSpecific       = "EVENT_SPECIFIC"
)

// Notification is one admin broadcast.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title     string     `gorm:"not null;size:255" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Type      string     `gorm:"size:30;not null" json:"type"`
	EventID   *uuid.UUID `gorm:"type:uuid;index" json:"event_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"-"`
}

// UserNotification is the per-recipient inbox record for a broadcast.
type UserNotification struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	NotificationID uuid.UUID `gorm:"type:uuid;not null;index" json:"notification_id"`
	Read           bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt      time.Time `json:"created_at"`

	Notification Notification `gorm:"foreignKey:NotificationID" json:"notification"`
}

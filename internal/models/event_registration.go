package models

import (
	"time"

	"github.com/google/uuid"
)

// EventRegistration is one user's intent-to-attend record for one event.
// Attendance fields are filled in by an admin after the event.
type EventRegistration struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_user_event" json:"user_id"`
	EventID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_user_event;index" json:"event_id"`
	Attended       bool      `gorm:"not null;default:false" json:"attended"`
	HoursWorked    *float64  `json:"hours_worked,omitempty"`
	TrashCollected *int      `json:"trash_collected,omitempty"`
	RegisteredAt   time.Time `gorm:"autoCreateTime" json:"registered_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event lifecycle statuses. Transitions are admin-driven only; there is no
// clock-based promotion from UPCOMING to ONGOING.
const (
	EventStatusUpcoming  = "UPCOMING"
	EventStatusOngoing   = "ONGOING"
	EventStatusCompleted = "COMPLETED"
	EventStatusCancelled = "CANCELLED"
)

// Event is a cleanup event users can register for.
type Event struct {
	ID              uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title           string                      `gorm:"not null;size:255" json:"title"`
	Description     string                      `gorm:"type:text;not null" json:"description"`
	Location        string                      `gorm:"not null;size:255" json:"location"`
	Latitude        float64                     `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude       float64                     `gorm:"type:decimal(11,8);not null" json:"longitude"`
	StartDateTime   time.Time                   `gorm:"not null;index" json:"start_date_time"`
	EndDateTime     time.Time                   `gorm:"not null" json:"end_date_time"`
	MeetingPoint    string                      `gorm:"not null;size:500" json:"meeting_point"`
	MaxParticipants *int                        `json:"max_participants,omitempty"`
	Status          string                      `gorm:"size:20;not null;default:'UPCOMING';index" json:"status"`
	EventResults    *string                     `gorm:"type:text" json:"event_results,omitempty"`
	Photos          datatypes.JSONSlice[string] `json:"photos"`
	CreatorID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"creator_id"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`

	Creator       User                `gorm:"foreignKey:CreatorID" json:"-"`
	Registrations []EventRegistration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

func ValidEventStatus(s string) bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

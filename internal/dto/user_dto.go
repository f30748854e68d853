package dto

import (
	"time"

	"github.com/google/uuid"
)

type LeaderboardEntry struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Points         int       `json:"points"`
	AttendedEvents int64     `json:"attended_events"`
}

type PointHistoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Points    int        `json:"points"`
	Reason    string     `json:"reason"`
	Kind      string     `json:"kind"`
	EventID   *uuid.UUID `json:"event_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type AttendedEventResponse struct {
	ID             uuid.UUID `json:"id"`
	EventID        uuid.UUID `json:"event_id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	StartDateTime  time.Time `json:"start_date_time"`
	HoursWorked    *float64  `json:"hours_worked,omitempty"`
	TrashCollected *int      `json:"trash_collected,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
}

type UserProfileResponse struct {
	ID             uuid.UUID               `json:"id"`
	Name           string                  `json:"name"`
	ProfilePicture *string                 `json:"profile_picture,omitempty"`
	Points         int                     `json:"points"`
	CreatedAt      time.Time               `json:"created_at"`
	AttendedEvents []AttendedEventResponse `json:"attended_events"`
	PointHistory   []PointHistoryResponse  `json:"point_history"`
}

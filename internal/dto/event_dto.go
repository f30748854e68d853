package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	StartDateTime   *time.Time `json:"start_date_time"`
	EndDateTime     *time.Time `json:"end_date_time"`
	MeetingPoint    string     `json:"meeting_point"`
	MaxParticipants *int       `json:"max_participants"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	StartDateTime   *time.Time `json:"start_date_time"`
	EndDateTime     *time.Time `json:"end_date_time"`
	MeetingPoint    *string    `json:"meeting_point"`
	MaxParticipants *int       `json:"max_participants"`
	Status          *string    `json:"status"`
	EventResults    *string    `json:"event_results"`
	Photos          []string   `json:"photos"`
}

type UserSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
}

type EventResponse struct {
	ID                uuid.UUID   `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Location          string      `json:"location"`
	Latitude          float64     `json:"latitude"`
	Longitude         float64     `json:"longitude"`
	StartDateTime     time.Time   `json:"start_date_time"`
	EndDateTime       time.Time   `json:"end_date_time"`
	MeetingPoint      string      `json:"meeting_point"`
	MaxParticipants   *int        `json:"max_participants,omitempty"`
	Status            string      `json:"status"`
	EventResults      *string     `json:"event_results,omitempty"`
	Photos            []string    `json:"photos"`
	Creator           UserSummary `json:"creator"`
	RegistrationCount int64       `json:"registration_count"`
	CreatedAt         time.Time   `json:"created_at"`
}

type RegistrationResponse struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"user_id"`
	EventID        uuid.UUID   `json:"event_id"`
	Attended       bool        `json:"attended"`
	HoursWorked    *float64    `json:"hours_worked,omitempty"`
	TrashCollected *int        `json:"trash_collected,omitempty"`
	RegisteredAt   time.Time   `json:"registered_at"`
	User           UserSummary `json:"user"`
}

type EventDetailResponse struct {
	EventResponse
	Registrations []RegistrationResponse `json:"registrations"`
}

type AttendanceRequest struct {
	UserID         uuid.UUID `json:"user_id"`
	Attended       bool      `json:"attended"`
	HoursWorked    *float64  `json:"hours_worked"`
	TrashCollected *int      `json:"trash_collected"`
}

type AttendanceResponse struct {
	Registration  RegistrationResponse `json:"registration"`
	PointsAwarded int                  `json:"points_awarded"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin     = "ADMIN"
	RoleVolunteer = "VOLUNTEER"
)

// User is a volunteer or admin account. Points is a denormalized running
// total of the user's PointHistory rows; every balance change goes through
// the points service so the two stay in sync.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	Role           string         `gorm:"size:20;default:'VOLUNTEER'" json:"role"`
	Points         int            `gorm:"not null;default:0" json:"points"`
	ProfilePicture *string        `gorm:"size:500" json:"profile_picture,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

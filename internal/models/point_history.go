package models

import (
	"time"

	"github.com/google/uuid"
)

// Award kinds. The composite unique index over (user_id, event_id, kind)
// makes each kind awardable at most once per user per event, so re-marking
// attendance cannot double-grant.
const (
	AwardKindRegistration         = "registration"
	AwardKindAttendance           = "attendance"
	AwardKindRegistrationReversal = "registration_reversal"
)

// PointHistory is the append-only audit trail of point grants. Rows are
// never mutated or deleted; reversals are recorded as negative deltas.
type PointHistory struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_point_history_user_event_kind" json:"user_id"`
	Points    int        `gorm:"not null" json:"points"`
	Reason    string     `gorm:"not null;size:500" json:"reason"`
	Kind      string     `gorm:"not null;size:30;uniqueIndex:idx_point_history_user_event_kind" json:"kind"`
	EventID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_point_history_user_event_kind" json:"event_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

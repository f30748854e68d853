package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Point rates. Flat base for attending, plus per-hour and per-kg bonuses.
const (
	PointsRegisterEvent = 10
	PointsAttendEvent   = 50
	PointsPerHourWorked = 20
	PointsPerKgTrash    = 5
)

var errAlreadyAwarded = errors.New("points already awarded")

type PointsService struct {
	db *gorm.DB
}

func NewPointsService(db *gorm.DB) *PointsService {
	return &PointsService{db: db}
}

// CalculateEventPoints returns the award for one attendance record: 0 when
// not attended, otherwise the base award plus floored hour and trash bonuses.
// Inputs are taken as reported; negative values reduce the award.
func CalculateEventPoints(attended bool, hoursWorked *float64, trashCollected *int) int {
	if !attended {
		return 0
	}

	points := PointsAttendEvent

	if hoursWorked != nil {
		points += int(math.Floor(*hoursWorked * PointsPerHourWorked))
	}

	if trashCollected != nil {
		points += int(math.Floor(float64(*trashCollected) * PointsPerKgTrash))
	}

	return points
}

// Award adjusts the user's running total and appends the matching ledger row
// in one transaction, so the total always equals the sum of the ledger.
//
// The ledger insert uses ON CONFLICT DO NOTHING against the unique
// (user_id, event_id, kind) index: when the same kind was already awarded for
// this event the whole award is a no-op and Award returns false.
func (s *PointsService) Award(userID uuid.UUID, points int, reason, kind string, eventID *uuid.UUID) (bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry := models.PointHistory{
			ID:      uuid.New(),
			UserID:  userID,
			Points:  points,
			Reason:  reason,
			Kind:    kind,
			EventID: eventID,
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
		if res.Error != nil {
			return fmt.Errorf("failed to create point history: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errAlreadyAwarded
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", points)).Error; err != nil {
			return fmt.Errorf("failed to update user points: %w", err)
		}
		return nil
	})

	if errors.Is(err, errAlreadyAwarded) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// History returns the user's most recent ledger entries, newest first.
func (s *PointsService) History(userID uuid.UUID, limit int) ([]models.PointHistory, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var entries []models.PointHistory
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

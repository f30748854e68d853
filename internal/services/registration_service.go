package services

import (
	"errors"
	"fmt"

	"github.com/ArtemFray/berlin-cleanup-app/internal/dto"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotRegistered     = errors.New("not registered for this event")
)

type RegistrationService struct {
	db     *gorm.DB
	points *PointsService
}

func NewRegistrationService(db *gorm.DB, points *PointsService) *RegistrationService {
	return &RegistrationService{db: db, points: points}
}

// Register creates the (user, event) registration row and grants the
// registration award. Capacity is checked against the current registrant
// count; the unique index backstops the duplicate check.
func (s *RegistrationService) Register(userID, eventID uuid.UUID) (*dto.RegistrationResponse, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.MaxParticipants != nil {
		var count int64
		if err := s.db.Model(&models.EventRegistration{}).
			Where("event_id = ?", eventID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count >= int64(*event.MaxParticipants) {
			return nil, ErrEventFull
		}
	}

	var existing models.EventRegistration
	if err := s.db.Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&existing).Error; err == nil {
		return nil, ErrAlreadyRegistered
	}

	registration := models.EventRegistration{
		ID:      uuid.New(),
		UserID:  userID,
		EventID: eventID,
	}
	if err := s.db.Create(&registration).Error; err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	if _, err := s.points.Award(userID, PointsRegisterEvent,
		"Registered for event: "+event.Title,
		models.AwardKindRegistration, &eventID); err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&registration, "id = ?", registration.ID).Error; err != nil {
		return nil, err
	}

	resp := mapRegistrationToResponse(&registration)
	return &resp, nil
}

// Unregister deletes the registration and reverses the registration award
// through the same ledger path, so the reversal leaves an audit row.
// Attendance-derived points are kept; that work already happened.
func (s *RegistrationService) Unregister(userID, eventID uuid.UUID) error {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	result := s.db.Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.EventRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotRegistered
	}

	_, err := s.points.Award(userID, -PointsRegisterEvent,
		"Unregistered from event: "+event.Title,
		models.AwardKindRegistrationReversal, &eventID)
	return err
}

// MarkAttendance records attendance figures on the registration and, when
// attended, grants the attendance award. The award is keyed on
// (user, event, attendance), so re-marking the same registration updates the
// figures but never grants twice.
func (s *RegistrationService) MarkAttendance(eventID uuid.UUID, req *dto.AttendanceRequest) (*dto.AttendanceResponse, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	result := s.db.Model(&models.EventRegistration{}).
		Where("user_id = ? AND event_id = ?", req.UserID, eventID).
		Updates(map[string]interface{}{
			"attended":        req.Attended,
			"hours_worked":    req.HoursWorked,
			"trash_collected": req.TrashCollected,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotRegistered
	}

	var registration models.EventRegistration
	if err := s.db.Preload("User").
		Where("user_id = ? AND event_id = ?", req.UserID, eventID).
		First(&registration).Error; err != nil {
		return nil, err
	}

	awarded := 0
	if req.Attended {
		points := CalculateEventPoints(req.Attended, registration.HoursWorked, registration.TrashCollected)
		granted, err := s.points.Award(req.UserID, points,
			"Attended event: "+event.Title,
			models.AwardKindAttendance, &eventID)
		if err != nil {
			return nil, err
		}
		if granted {
			awarded = points
		}
	}

	return &dto.AttendanceResponse{
		Registration:  mapRegistrationToResponse(&registration),
		PointsAwarded: awarded,
	}, nil
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArtemFray/berlin-cleanup-app/internal/dto"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidLatitude    = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude   = errors.New("longitude must be between -180 and 180")
	ErrInvalidEventStatus = errors.New("invalid event status")
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// EventFilter narrows the public event listing. Upcoming implies
// status=UPCOMING and a start time at or after now.
type EventFilter struct {
	Status   string
	Upcoming bool
}

func (s *EventService) List(filter EventFilter) ([]dto.EventResponse, error) {
	query := s.db.Model(&models.Event{}).Preload("Creator")

	if filter.Upcoming {
		query = query.Where("status = ? AND start_date_time >= ?", models.EventStatusUpcoming, time.Now())
	} else if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var events []models.Event
	if err := query.Order("start_date_time ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	counts, err := s.registrationCounts(events)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = mapEventToResponse(&events[i], counts[events[i].ID])
	}
	return resp, nil
}

func (s *EventService) Get(id uuid.UUID) (*dto.EventDetailResponse, error) {
	var event models.Event
	err := s.db.Preload("Creator").
		Preload("Registrations").
		Preload("Registrations.User").
		First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	detail := dto.EventDetailResponse{
		EventResponse: mapEventToResponse(&event, int64(len(event.Registrations))),
		Registrations: make([]dto.RegistrationResponse, len(event.Registrations)),
	}
	for i := range event.Registrations {
		detail.Registrations[i] = mapRegistrationToResponse(&event.Registrations[i])
	}
	return &detail, nil
}

func (s *EventService) Create(creatorID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.Location) == "" || strings.TrimSpace(req.MeetingPoint) == "" ||
		req.Latitude == nil || req.Longitude == nil ||
		req.StartDateTime == nil || req.EndDateTime == nil {
		return nil, ErrMissingFields
	}
	if err := validateCoordinates(*req.Latitude, *req.Longitude); err != nil {
		return nil, err
	}

	event := models.Event{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Latitude:        *req.Latitude,
		Longitude:       *req.Longitude,
		StartDateTime:   *req.StartDateTime,
		EndDateTime:     *req.EndDateTime,
		MeetingPoint:    req.MeetingPoint,
		MaxParticipants: req.MaxParticipants,
		Status:          models.EventStatusUpcoming,
		Photos:          datatypes.JSONSlice[string]{},
		CreatorID:       creatorID,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := s.db.Preload("Creator").First(&event, "id = ?", event.ID).Error; err != nil {
		return nil, err
	}

	resp := mapEventToResponse(&event, 0)
	return &resp, nil
}

// Update applies only the provided fields. Status accepts any of the four
// enum values in any order; transitions are deliberately not sequenced.
func (s *EventService) Update(id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	updates := map[string]interface{}{}

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			return nil, ErrInvalidLatitude
		}
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			return nil, ErrInvalidLongitude
		}
		updates["longitude"] = *req.Longitude
	}
	if req.StartDateTime != nil {
		updates["start_date_time"] = *req.StartDateTime
	}
	if req.EndDateTime != nil {
		updates["end_date_time"] = *req.EndDateTime
	}
	if req.MeetingPoint != nil {
		updates["meeting_point"] = *req.MeetingPoint
	}
	if req.MaxParticipants != nil {
		updates["max_participants"] = *req.MaxParticipants
	}
	if req.Status != nil {
		if !models.ValidEventStatus(*req.Status) {
			return nil, ErrInvalidEventStatus
		}
		updates["status"] = *req.Status
	}
	if req.EventResults != nil {
		updates["event_results"] = *req.EventResults
	}
	if req.Photos != nil {
		updates["photos"] = datatypes.JSONSlice[string](req.Photos)
	}

	if len(updates) > 0 {
		result := s.db.Model(&models.Event{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrEventNotFound
		}
	}

	var event models.Event
	if err := s.db.Preload("Creator").First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	var count int64
	s.db.Model(&models.EventRegistration{}).Where("event_id = ?", id).Count(&count)

	resp := mapEventToResponse(&event, count)
	return &resp, nil
}

// Delete removes the event and its registrations.
func (s *EventService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("event_id = ?", id).Delete(&models.EventRegistration{})

		result := tx.Delete(&models.Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}
		return nil
	})
}

func (s *EventService) registrationCounts(events []models.Event) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(events))
	if len(events) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}

	var rows []struct {
		EventID uuid.UUID
		Count   int64
	}
	err := s.db.Model(&models.EventRegistration{}).
		Select("event_id, COUNT(*) AS count").
		Where("event_id IN ?", ids).
		Group("event_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.EventID] = row.Count
	}
	return counts, nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if lng < -180 || lng > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

func mapEventToResponse(e *models.Event, registrationCount int64) dto.EventResponse {
	return dto.EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Location:        e.Location,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		StartDateTime:   e.StartDateTime,
		EndDateTime:     e.EndDateTime,
		MeetingPoint:    e.MeetingPoint,
		MaxParticipants: e.MaxParticipants,
		Status:          e.Status,
		EventResults:    e.EventResults,
		Photos:          e.Photos,
		Creator: dto.UserSummary{
			ID:    e.Creator.ID,
			Name:  e.Creator.Name,
			Email: e.Creator.Email,
		},
		RegistrationCount: registrationCount,
		CreatedAt:         e.CreatedAt,
	}
}

func mapRegistrationToResponse(r *models.EventRegistration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		EventID:        r.EventID,
		Attended:       r.Attended,
		HoursWorked:    r.HoursWorked,
		TrashCollected: r.TrashCollected,
		RegisteredAt:   r.RegisteredAt,
		User: dto.UserSummary{
			ID:             r.User.ID,
			Name:           r.User.Name,
			ProfilePicture: r.User.ProfilePicture,
		},
	}
}

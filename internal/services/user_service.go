package services

import (
	"errors"

	"github.com/ArtemFray/berlin-cleanup-app/internal/dto"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db     *gorm.DB
	points *PointsService
}

func NewUserService(db *gorm.DB, points *PointsService) *UserService {
	return &UserService{db: db, points: points}
}

// Leaderboard returns the top volunteers by running points total, with the
// number of events each actually attended. Admins are excluded.
func (s *UserService) Leaderboard(limit int) ([]dto.LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var users []models.User
	err := s.db.Where("role = ?", models.RoleVolunteer).
		Order("points DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, len(users))
	if len(users) == 0 {
		return entries, nil
	}

	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}

	var counts []struct {
		UserID uuid.UUID
		Count  int64
	}
	err = s.db.Model(&models.EventRegistration{}).
		Select("user_id, COUNT(*) AS count").
		Where("user_id IN ? AND attended = ?", ids, true).
		Group("user_id").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}

	attended := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		attended[c.UserID] = c.Count
	}

	for i := range users {
		entries[i] = dto.LeaderboardEntry{
			ID:             users[i].ID,
			Name:           users[i].Name,
			ProfilePicture: users[i].ProfilePicture,
			Points:         users[i].Points,
			AttendedEvents: attended[users[i].ID],
		}
	}
	return entries, nil
}

// Profile is the public view of one user: points, attended events and the
// most recent ledger entries.
func (s *UserService) Profile(id uuid.UUID) (*dto.UserProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var registrations []models.EventRegistration
	err := s.db.Preload("Event").
		Where("user_id = ? AND attended = ?", id, true).
		Order("registered_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}

	history, err := s.points.History(id, 20)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserProfileResponse{
		ID:             user.ID,
		Name:           user.Name,
		ProfilePicture: user.ProfilePicture,
		Points:         user.Points,
		CreatedAt:      user.CreatedAt,
		AttendedEvents: make([]dto.AttendedEventResponse, len(registrations)),
		PointHistory:   make([]dto.PointHistoryResponse, len(history)),
	}

	for i, r := range registrations {
		resp.AttendedEvents[i] = dto.AttendedEventResponse{
			ID:             r.ID,
			EventID:        r.EventID,
			Title:          r.Event.Title,
			Location:       r.Event.Location,
			StartDateTime:  r.Event.StartDateTime,
			HoursWorked:    r.HoursWorked,
			TrashCollected: r.TrashCollected,
			RegisteredAt:   r.RegisteredAt,
		}
	}

	for i, h := range history {
		resp.PointHistory[i] = dto.PointHistoryResponse{
			ID:        h.ID,
			Points:    h.Points,
			Reason:    h.Reason,
			Kind:      h.Kind,
			EventID:   h.EventID,
			CreatedAt: h.CreatedAt,
		}
	}

	return resp, nil
}

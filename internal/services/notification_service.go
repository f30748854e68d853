package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ArtemFray/berlin-cleanup-app/internal/dto"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/ArtemFray/berlin-cleanup-app/internal/push"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotificationFields   = errors.New("title, message, and type are required")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidSubscription  = errors.New("invalid subscription")
)

// PushSender dispatches one payload to a set of subscriptions and tallies
// the outcome. *push.Client implements it; tests substitute a fake.
type PushSender interface {
	Enabled() bool
	SendBulk(subs []models.PushSubscription, payload *push.Payload) push.Summary
}

type NotificationService struct {
	db     *gorm.DB
	sender PushSender
}

func NewNotificationService(db *gorm.DB, sender PushSender) *NotificationService {
	return &NotificationService{db: db, sender: sender}
}

// Broadcast persists the notification, fans out one inbox row per recipient
// and pushes to every registered endpoint of the recipient set.
//
// Recipients: EVENT_SPECIFIC resolves to the event's registrants,
// GENERAL_ANNOUNCEMENT to every user, anything else to nobody. A recipient
// with no push subscription still gets the inbox row.
func (s *NotificationService) Broadcast(req *dto.SendNotificationRequest) (*dto.SendNotificationResponse, error) {
	if req.Title == "" || req.Message == "" || req.Type == "" {
		return nil, ErrNotificationFields
	}

	notification := models.Notification{
		ID:      uuid.New(),
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		EventID: req.EventID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	recipientIDs, err := s.resolveRecipients(req.Type, req.EventID)
	if err != nil {
		return nil, err
	}

	// Inbox fan-out is best effort: the broadcast record stands even if
	// some rows fail to insert.
	if len(recipientIDs) > 0 {
		rows := make([]models.UserNotification, len(recipientIDs))
		for i, userID := range recipientIDs {
			rows[i] = models.UserNotification{
				ID:             uuid.New(),
				UserID:         userID,
				NotificationID: notification.ID,
			}
		}
		if err := s.db.CreateInBatches(rows, 100).Error; err != nil {
			slog.Error("failed to create user notifications",
				"notification_id", notification.ID, "error", err)
		}
	}

	resp := &dto.SendNotificationResponse{
		NotificationID: notification.ID,
		RecipientCount: len(recipientIDs),
	}

	if len(recipientIDs) == 0 || !s.sender.Enabled() {
		return resp, nil
	}

	var subs []models.PushSubscription
	if err := s.db.Where("user_id IN ?", recipientIDs).Find(&subs).Error; err != nil {
		slog.Error("failed to load push subscriptions",
			"notification_id", notification.ID, "error", err)
		return resp, nil
	}

	if len(subs) > 0 {
		summary := s.sender.SendBulk(subs, &push.Payload{
			Title: req.Title,
			Body:  req.Message,
			Icon:  "/icons/icon-192x192.png",
			Badge: "/icons/badge-72x72.png",
			Data: push.PayloadData{
				NotificationID: notification.ID,
				EventID:        req.EventID,
			},
		})
		resp.PushResults = &dto.PushResultsResponse{
			Successful: summary.Successful,
			Failed:     summary.Failed,
			Total:      summary.Total,
		}
	}

	return resp, nil
}

func (s *NotificationService) resolveRecipients(notifType string, eventID *uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	switch {
	case notifType == models.NotificationTypeEventSpecific && eventID != nil:
		err := s.db.Model(&models.EventRegistration{}).
			Where("event_id = ?", *eventID).
			Pluck("user_id", &ids).Error
		if err != nil {
			return nil, err
		}
	case notifType == models.NotificationTypeGeneralAnnouncement:
		err := s.db.Model(&models.User{}).Pluck("id", &ids).Error
		if err != nil {
			return nil, err
		}
	}

	return ids, nil
}

// Inbox returns the user's most recent notifications, newest first.
func (s *NotificationService) Inbox(userID uuid.UUID, limit int) ([]dto.InboxItemResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var rows []models.UserNotification
	err := s.db.Preload("Notification").
		Preload("Notification.Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.InboxItemResponse, len(rows))
	for i, row := range rows {
		items[i] = dto.InboxItemResponse{
			ID:        row.ID,
			Title:     row.Notification.Title,
			Message:   row.Notification.Message,
			Type:      row.Notification.Type,
			Read:      row.Read,
			CreatedAt: row.CreatedAt,
		}
		if row.Notification.Event != nil {
			items[i].Event = &dto.EventSummary{
				ID:    row.Notification.Event.ID,
				Title: row.Notification.Event.Title,
			}
		}
	}
	return items, nil
}

// MarkRead flags one inbox row as read. Scoped to the owner.
func (s *NotificationService) MarkRead(userID, userNotificationID uuid.UUID) error {
	result := s.db.Model(&models.UserNotification{}).
		Where("id = ? AND user_id = ?", userNotificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// Subscribe upserts a push subscription keyed on its endpoint. A device
// resubscribing under another account is reassigned to that account.
func (s *NotificationService) Subscribe(userID uuid.UUID, req *dto.SubscribeRequest) error {
	sub := req.Subscription
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return ErrInvalidSubscription
	}

	record := models.PushSubscription{
		ID:       uuid.New(),
		UserID:   userID,
		Endpoint: sub.Endpoint,
		P256dh:   sub.Keys.P256dh,
		Auth:     sub.Keys.Auth,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth", "updated_at"}),
	}).Create(&record).Error
}

package services

import (
	"errors"
	"testing"

	"github.com/ArtemFray/berlin-cleanup-app/internal/dto"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/ArtemFray/berlin-cleanup-app/internal/push"
	"github.com/google/uuid"
)

// fakeSender records what would have been pushed.
type fakeSender struct {
	enabled bool
	sent    []models.PushSubscription
	payload *push.Payload
}

func (f *fakeSender) Enabled() bool { return f.enabled }

func (f *fakeSender) SendBulk(subs []models.PushSubscription, payload *push.Payload) push.Summary {
	f.sent = append(f.sent, subs...)
	f.payload = payload
	return push.Summary{Successful: len(subs), Total: len(subs)}
}

func TestBroadcastEventSpecific(t *testing.T) {
	db := setupTestDB(t)
	sender := &fakeSender{enabled: true}
	svc := NewNotificationService(db, sender)
	regSvc := newRegistrationService(db)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	a := createTestUser(t, db, "a@example.com", models.RoleVolunteer)
	b := createTestUser(t, db, "b@example.com", models.RoleVolunteer)
	createTestUser(t, db, "c@example.com", models.RoleVolunteer) // not registered
	event := createTestEvent(t, db, admin.ID, nil)

	for _, u := range []uuid.UUID{a.ID, b.ID} {
		if _, err := regSvc.Register(u, event.ID); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	resp, err := svc.Broadcast(&dto.SendNotificationRequest{
		Title:   "Reminder",
		Message: "Event starts soon",
		Type:    models.NotificationTypeEventSpecific,
		EventID: &event.ID,
	})
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if resp.RecipientCount != 2 {
		t.Errorf("expected 2 recipients, got %d", resp.RecipientCount)
	}

	var count int64
	db.Model(&models.UserNotification{}).Where("notification_id = ?", resp.NotificationID).Count(&count)
	if count != 2 {
		t.Errorf("expected exactly 2 user notification rows, got %d", count)
	}
}

func TestBroadcastGeneralAnnouncement(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, &fakeSender{enabled: true})

	createTestUser(t, db, "a@example.com", models.RoleVolunteer)
	createTestUser(t, db, "b@example.com", models.RoleVolunteer)
	createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	resp, err := svc.Broadcast(&dto.SendNotificationRequest{
		Title:   "News",
		Message: "New cleanup season",
		Type:    models.NotificationTypeGeneralAnnouncement,
	})
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if resp.RecipientCount != 3 {
		t.Errorf("expected one recipient per user (3), got %d", resp.RecipientCount)
	}

	var count int64
	db.Model(&models.UserNotification{}).Count(&count)
	if count != 3 {
		t.Errorf("expected 3 user notification rows, got %d", count)
	}
}

func TestBroadcastUnknownTypeHasNoRecipients(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, &fakeSender{enabled: true})
	createTestUser(t, db, "a@example.com", models.RoleVolunteer)

	resp, err := svc.Broadcast(&dto.SendNotificationRequest{
		Title:   "Odd",
		Message: "Nobody should get this",
		Type:    "SOMETHING_ELSE",
	})
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}
	if resp.RecipientCount != 0 {
		t.Errorf("expected 0 recipients, got %d", resp.RecipientCount)
	}
	if resp.PushResults != nil {
		t.Error("expected no push results for empty recipient set")
	}
}

func TestBroadcastMissingFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, &fakeSender{})

	_, err := svc.Broadcast(&dto.SendNotificationRequest{Title: "No message"})
	if !errors.Is(err, ErrNotificationFields) {
		t.Errorf("expected ErrNotificationFields, got %v", err)
	}
}

func TestBroadcastPushesToRecipientSubscriptions(t *testing.T) {
	db := setupTestDB(t)
	sender := &fakeSender{enabled: true}
	svc := NewNotificationService(db, sender)
	regSvc := newRegistrationService(db)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	a := createTestUser(t, db, "a@example.com", models.RoleVolunteer)
	b := createTestUser(t, db, "b@example.com", models.RoleVolunteer)
	event := createTestEvent(t, db, admin.ID, nil)

	regSvc.Register(a.ID, event.ID)
	regSvc.Register(b.ID, event.ID)

	// Only a has a push subscription; b still gets the inbox row.
	subReq := &dto.SubscribeRequest{}
	subReq.Subscription.Endpoint = "https://push.example.com/ep1"
	subReq.Subscription.Keys = dto.SubscriptionKeys{P256dh: "key", Auth: "auth"}
	if err := svc.Subscribe(a.ID, subReq); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	resp, err := svc.Broadcast(&dto.SendNotificationRequest{
		Title:   "Reminder",
		Message: "Soon",
		Type:    models.NotificationTypeEventSpecific,
		EventID: &event.ID,
	})
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if resp.RecipientCount != 2 {
		t.Errorf("expected 2 recipients, got %d", resp.RecipientCount)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected push to 1 subscription, got %d", len(sender.sent))
	}
	if sender.payload.Title != "Reminder" || sender.payload.Body != "Soon" {
		t.Error("push payload does not carry title/message")
	}
	if sender.payload.Data.NotificationID != resp.NotificationID {
		t.Error("push payload data does not reference the notification")
	}
}

func TestSubscribeUpsertsByEndpoint(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, &fakeSender{})
	a := createTestUser(t, db, "a@example.com", models.RoleVolunteer)
	b := createTestUser(t, db, "b@example.com", models.RoleVolunteer)

	req := &dto.SubscribeRequest{}
	req.Subscription.Endpoint = "https://push.example.com/shared"
	req.Subscription.Keys = dto.SubscriptionKeys{P256dh: "key1", Auth: "auth1"}

	if err := svc.Subscribe(a.ID, req); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	req.Subscription.Keys = dto.SubscriptionKeys{P256dh: "key2", Auth: "auth2"}
	if err := svc.Subscribe(b.ID, req); err != nil {
		t.Fatalf("re-Subscribe failed: %v", err)
	}

	var subs []models.PushSubscription
	db.Find(&subs)
	if len(subs) != 1 {
		t.Fatalf("expected 1 subscription row after upsert, got %d", len(subs))
	}
	if subs[0].UserID != b.ID || subs[0].P256dh != "key2" {
		t.Error("expected subscription to be reassigned to the new user")
	}
}

func TestSubscribeRejectsIncomplete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, &fakeSender{})
	a := createTestUser(t, db, "a@example.com", models.RoleVolunteer)

	req := &dto.SubscribeRequest{}
	req.Subscription.Endpoint = "https://push.example.com/ep"
	if err := svc.Subscribe(a.ID, req); !errors.Is(err, ErrInvalidSubscription) {
		t.Errorf("expected ErrInvalidSubscription, got %v", err)
	}
}

func TestInboxAndMarkRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, &fakeSender{})
	a := createTestUser(t, db, "a@example.com", models.RoleVolunteer)
	b := createTestUser(t, db, "b@example.com", models.RoleVolunteer)

	if _, err := svc.Broadcast(&dto.SendNotificationRequest{
		Title:   "Hello",
		Message: "World",
		Type:    models.NotificationTypeGeneralAnnouncement,
	}); err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	items, err := svc.Inbox(a.ID, 50)
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 inbox item, got %d", len(items))
	}
	if items[0].Read {
		t.Error("expected new inbox item to be unread")
	}

	// b cannot mark a's row read
	if err := svc.MarkRead(b.ID, items[0].ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("expected ErrNotificationNotFound for foreign row, got %v", err)
	}

	if err := svc.MarkRead(a.ID, items[0].ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	items, _ = svc.Inbox(a.ID, 50)
	if !items[0].Read {
		t.Error("expected inbox item to be read after MarkRead")
	}
}

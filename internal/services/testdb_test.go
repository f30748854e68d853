package services

import (
	"strings"
	"testing"
	"time"

	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a shared in-memory SQLite database for one test.
// file:NAME?mode=memory&cache=shared is required because gorm pools
// connections; plain :memory: would give each connection its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	ddl := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT DEFAULT 'VOLUNTEER',
			points INTEGER NOT NULL DEFAULT 0,
			profile_picture TEXT,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_users_email ON users(email)`,
		`CREATE TABLE refresh_tokens (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			token_hash TEXT NOT NULL UNIQUE,
			expires_at DATETIME NOT NULL,
			revoked BOOLEAN DEFAULT 0,
			created_at DATETIME
		)`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			location TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			start_date_time DATETIME NOT NULL,
			end_date_time DATETIME NOT NULL,
			meeting_point TEXT NOT NULL,
			max_participants INTEGER,
			status TEXT NOT NULL DEFAULT 'UPCOMING',
			event_results TEXT,
			photos TEXT,
			creator_id TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE event_registrations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			event_id TEXT NOT NULL,
			attended BOOLEAN NOT NULL DEFAULT 0,
			hours_worked REAL,
			trash_collected INTEGER,
			registered_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_registrations_user_event ON event_registrations(user_id, event_id)`,
		`CREATE TABLE point_histories (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			points INTEGER NOT NULL,
			reason TEXT NOT NULL,
			kind TEXT NOT NULL,
			event_id TEXT,
			created_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_point_history_user_event_kind ON point_histories(user_id, event_id, kind)`,
		`CREATE TABLE notifications (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT NOT NULL,
			event_id TEXT,
			created_at DATETIME
		)`,
		`CREATE TABLE user_notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			notification_id TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME
		)`,
		`CREATE TABLE push_subscriptions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			p256dh TEXT NOT NULL,
			auth TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_push_subscriptions_endpoint ON push_subscriptions(endpoint)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "$2a$12$not.a.real.hash",
		Name:     strings.Split(email, "@")[0],
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestEvent(t *testing.T, db *gorm.DB, creatorID uuid.UUID, maxParticipants *int) *models.Event {
	t.Helper()

	event := models.Event{
		ID:              uuid.New(),
		Title:           "Tiergarten Cleanup",
		Description:     "Bring gloves",
		Location:        "Tiergarten, Berlin",
		Latitude:        52.5145,
		Longitude:       13.3501,
		StartDateTime:   time.Now().Add(24 * time.Hour),
		EndDateTime:     time.Now().Add(28 * time.Hour),
		MeetingPoint:    "Main gate",
		MaxParticipants: maxParticipants,
		Status:          models.EventStatusUpcoming,
		CreatorID:       creatorID,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return &event
}

func userPoints(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	return user.Points
}

func ledgerSum(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()

	var sum *int
	if err := db.Model(&models.PointHistory{}).
		Where("user_id = ?", userID).
		Select("SUM(points)").Scan(&sum).Error; err != nil {
		t.Fatalf("failed to sum ledger: %v", err)
	}
	if sum == nil {
		return 0
	}
	return *sum
}

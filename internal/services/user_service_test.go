package services

import (
	"errors"
	"testing"

	"github.com/ArtemFray/berlin-cleanup-app/internal/dto"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/google/uuid"
)

func TestLeaderboardOrdersByPoints(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewPointsService(db))
	regSvc := newRegistrationService(db)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	low := createTestUser(t, db, "low@example.com", models.RoleVolunteer)
	high := createTestUser(t, db, "high@example.com", models.RoleVolunteer)
	event := createTestEvent(t, db, admin.ID, nil)

	for _, u := range []uuid.UUID{low.ID, high.ID} {
		if _, err := regSvc.Register(u, event.ID); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	if _, err := regSvc.MarkAttendance(event.ID, &dto.AttendanceRequest{
		UserID:   high.ID,
		Attended: true,
	}); err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}

	entries, err := svc.Leaderboard(50)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 volunteers on the board, got %d", len(entries))
	}
	if entries[0].ID != high.ID {
		t.Error("expected the higher-scoring volunteer first")
	}
	if entries[0].Points <= entries[1].Points {
		t.Error("expected descending point order")
	}
	if entries[0].AttendedEvents != 1 || entries[1].AttendedEvents != 0 {
		t.Errorf("expected attended counts 1 and 0, got %d and %d",
			entries[0].AttendedEvents, entries[1].AttendedEvents)
	}
}

func TestLeaderboardExcludesAdmins(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewPointsService(db))

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	db.Model(&models.User{}).Where("id = ?", admin.ID).Update("points", 1000)
	createTestUser(t, db, "vol@example.com", models.RoleVolunteer)

	entries, err := svc.Leaderboard(50)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID == admin.ID {
		t.Error("expected admins to be excluded")
	}
}

func TestProfileAggregates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewPointsService(db))
	regSvc := newRegistrationService(db)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	user := createTestUser(t, db, "vol@example.com", models.RoleVolunteer)
	event := createTestEvent(t, db, admin.ID, nil)

	if _, err := regSvc.Register(user.ID, event.ID); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := regSvc.MarkAttendance(event.ID, &dto.AttendanceRequest{
		UserID:      user.ID,
		Attended:    true,
		HoursWorked: floatPtr(2),
	}); err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}

	profile, err := svc.Profile(user.ID)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if profile.Points != PointsRegisterEvent+PointsAttendEvent+2*PointsPerHourWorked {
		t.Errorf("unexpected points total %d", profile.Points)
	}
	if len(profile.AttendedEvents) != 1 {
		t.Fatalf("expected 1 attended event, got %d", len(profile.AttendedEvents))
	}
	if profile.AttendedEvents[0].Title != event.Title {
		t.Error("expected the event title on the attended entry")
	}
	if len(profile.PointHistory) != 2 {
		t.Errorf("expected 2 ledger entries (registration and attendance), got %d", len(profile.PointHistory))
	}
}

func TestProfileNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, NewPointsService(db))

	if _, err := svc.Profile(uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

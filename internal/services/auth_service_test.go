package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ArtemFray/berlin-cleanup-app/internal/config"
	"github.com/ArtemFray/berlin-cleanup-app/internal/dto"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	})
}

func TestRegisterCreatesVolunteer(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
		Name:     "Anna",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.User.Role != models.RoleVolunteer {
		t.Errorf("expected new users to get role %s, got %s", models.RoleVolunteer, resp.User.Role)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected a token pair")
	}

	var stored models.User
	if err := db.First(&stored, "email = ?", "anna@example.com").Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.Password == "correct-horse" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	req := &dto.RegisterRequest{Email: "anna@example.com", Password: "correct-horse", Name: "Anna"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Same address in a different case must still collide.
	req.Email = "ANNA@example.com"
	if _, err := svc.Register(req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register(&dto.RegisterRequest{
		Email:    "anna@example.com",
		Password: "short",
		Name:     "Anna",
	}); err == nil {
		t.Error("expected an error for a 5-character password")
	}
}

func TestLoginCaseInsensitiveEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register(&dto.RegisterRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
		Name:     "Anna",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(&dto.LoginRequest{Email: "Anna@Example.COM", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims["email"] != "anna@example.com" {
		t.Errorf("expected email claim anna@example.com, got %v", claims["email"])
	}
	if claims["role"] != models.RoleVolunteer {
		t.Errorf("expected role claim %s, got %v", models.RoleVolunteer, claims["role"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	svc.Register(&dto.RegisterRequest{Email: "anna@example.com", Password: "correct-horse", Name: "Anna"})

	if _, err := svc.Login(&dto.LoginRequest{Email: "anna@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	reg, err := svc.Register(&dto.RegisterRequest{Email: "anna@example.com", Password: "correct-horse", Name: "Anna"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.RefreshToken == reg.RefreshToken {
		t.Error("expected the refresh token to rotate")
	}

	// The old token is revoked after one use.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken on token reuse, got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	reg, err := svc.Register(&dto.RegisterRequest{Email: "anna@example.com", Password: "correct-horse", Name: "Anna"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: reg.RefreshToken}); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	user := createTestUser(t, db, "anna@example.com", models.RoleVolunteer)

	resp, err := svc.Me(user.ID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if resp.Email != "anna@example.com" {
		t.Errorf("expected anna@example.com, got %s", resp.Email)
	}
}

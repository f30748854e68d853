// Command createadmin creates or repairs the ADMIN account from
// ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME.
package main

import (
	"log/slog"
	"os"

	"github.com/ArtemFray/berlin-cleanup-app/internal/config"
	"github.com/ArtemFray/berlin-cleanup-app/internal/database"
	"github.com/ArtemFray/berlin-cleanup-app/internal/logging"
	"github.com/ArtemFray/berlin-cleanup-app/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if cfg.AdminPassword == "" {
		slog.Error("ADMIN_PASSWORD environment variable is required")
		os.Exit(1)
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	var existing models.User
	err = database.DB.Where("LOWER(email) = LOWER(?)", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"password": string(hash),
			"role":     models.RoleAdmin,
			"name":     cfg.AdminName,
		}
		if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
			slog.Error("failed to update admin user", "error", err)
			os.Exit(1)
		}
		slog.Info("admin user updated", "id", existing.ID, "email", existing.Email)
		return
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Name:     cfg.AdminName,
		Role:     models.RoleAdmin,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		slog.Error("failed to create admin user", "error", err)
		os.Exit(1)
	}

	slog.Info("admin user created", "id", user.ID, "email", user.Email)
}

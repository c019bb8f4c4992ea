package db

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lfms6164/digital-folder-api/internal/models"
)

// SeedUsers creates one user per role from ADMIN_USERNAME/ADMIN_PASSWORD,
// USER_USERNAME/USER_PASSWORD and VIEWER_USERNAME/VIEWER_PASSWORD environment
// variables. Roles whose variables are unset are skipped, as are roles that
// already have a user.
func SeedUsers(db *gorm.DB) error {
	seeds := []struct {
		role        models.UserRole
		usernameEnv string
		passwordEnv string
	}{
		{models.RoleAdmin, "ADMIN_USERNAME", "ADMIN_PASSWORD"},
		{models.RoleUser, "USER_USERNAME", "USER_PASSWORD"},
		{models.RoleViewer, "VIEWER_USERNAME", "VIEWER_PASSWORD"},
	}

	for _, seed := range seeds {
		username := os.Getenv(seed.usernameEnv)
		password := os.Getenv(seed.passwordEnv)
		if username == "" || password == "" {
			slog.Info("No credentials set, skipping user creation", "role", seed.role)
			continue
		}

		var count int64
		if err := db.Model(&models.User{}).Where("role = ?", seed.role).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count %s users: %w", seed.role, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := models.User{
			Username: username,
			Password: string(hash),
			Role:     seed.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create %s user: %w", seed.role, err)
		}

		slog.Info("Seed user created", "username", username, "role", seed.role)
	}

	return nil
}

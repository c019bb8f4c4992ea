package db

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lfms6164/digital-folder-api/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedUsers_AllRoles(t *testing.T) {
	db := testDB(t)
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "root-pw")
	t.Setenv("USER_USERNAME", "alice")
	t.Setenv("USER_PASSWORD", "alice-pw")
	t.Setenv("VIEWER_USERNAME", "guest")
	t.Setenv("VIEWER_PASSWORD", "guest-pw")

	if err := SeedUsers(db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 seeded users, got %d", count)
	}

	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if admin.Username != "root" {
		t.Errorf("expected admin username root, got %q", admin.Username)
	}
	if admin.Password == "root-pw" {
		t.Error("expected password to be hashed")
	}
}

func TestSeedUsers_SkipsUnsetRoles(t *testing.T) {
	db := testDB(t)
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "root-pw")
	t.Setenv("USER_USERNAME", "")
	t.Setenv("USER_PASSWORD", "")
	t.Setenv("VIEWER_USERNAME", "")
	t.Setenv("VIEWER_PASSWORD", "")

	if err := SeedUsers(db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected only the admin to be seeded, got %d", count)
	}
}

func TestSeedUsers_Idempotent(t *testing.T) {
	db := testDB(t)
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "root-pw")
	t.Setenv("USER_USERNAME", "")
	t.Setenv("USER_PASSWORD", "")
	t.Setenv("VIEWER_USERNAME", "")
	t.Setenv("VIEWER_PASSWORD", "")

	if err := SeedUsers(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedUsers(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected seeding to be idempotent, got %d users", count)
	}
}

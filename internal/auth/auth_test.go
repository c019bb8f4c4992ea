package auth

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lfms6164/digital-folder-api/internal/config"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

func testSetup(t *testing.T) (*Authenticator, *store.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s := store.New(db)
	a := New(s, config.AuthConfig{JWTSecret: "test-secret", TokenExpiryMinutes: 5})
	return a, s
}

func createUser(t *testing.T, s *store.Store, username string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Username: username, Password: hash, Role: role}
	if err := store.Create(s, &user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !VerifyPassword(hash, "secret") {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestTokenRoundTrip_Admin(t *testing.T) {
	a, s := testSetup(t)
	admin := createUser(t, s, "root", models.RoleAdmin)

	token, err := a.GenerateToken(admin.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	actor, err := a.Actor(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actor.ID != admin.ID {
		t.Errorf("expected actor id %s, got %s", admin.ID, actor.ID)
	}
	if actor.FilterID != nil {
		t.Error("expected admin to have no ownership scope")
	}
	if !actor.IsAdmin() || !actor.CanWrite() {
		t.Error("expected admin capabilities")
	}
}

func TestTokenRoundTrip_UserScope(t *testing.T) {
	a, s := testSetup(t)
	user := createUser(t, s, "alice", models.RoleUser)

	token, err := a.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	actor, err := a.Actor(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actor.FilterID == nil || *actor.FilterID != user.ID {
		t.Errorf("expected user scoped to own rows, got %v", actor.FilterID)
	}
	if !actor.CanWrite() {
		t.Error("expected user to be a writer")
	}
}

func TestTokenRoundTrip_ViewerScopedToAdmin(t *testing.T) {
	a, s := testSetup(t)
	admin := createUser(t, s, "root", models.RoleAdmin)
	viewer := createUser(t, s, "guest", models.RoleViewer)

	token, err := a.GenerateToken(viewer.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	actor, err := a.Actor(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actor.FilterID == nil || *actor.FilterID != admin.ID {
		t.Errorf("expected viewer scoped to admin rows, got %v", actor.FilterID)
	}
	if actor.CanWrite() {
		t.Error("expected viewer to be read-only")
	}
}

func TestActor_InvalidToken(t *testing.T) {
	a, _ := testSetup(t)

	if _, err := a.Actor("garbage"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestActor_WrongSecret(t *testing.T) {
	a, s := testSetup(t)
	user := createUser(t, s, "alice", models.RoleUser)

	other := New(s, config.AuthConfig{JWTSecret: "different-secret", TokenExpiryMinutes: 5})
	token, err := other.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := a.Actor(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestActor_UnknownUser(t *testing.T) {
	a, s := testSetup(t)
	user := createUser(t, s, "alice", models.RoleUser)

	token, err := a.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if err := s.DB().Delete(&models.User{}, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := a.Actor(token); err == nil {
		t.Fatal("expected error when the token's user no longer exists")
	}
}

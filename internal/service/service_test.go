package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lfms6164/digital-folder-api/internal/auth"
	"github.com/lfms6164/digital-folder-api/internal/config"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/storage"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// testEnv bundles every service wired against a throwaway sqlite database and
// an in-memory object store.
type testEnv struct {
	store    *store.Store
	blob     *storage.MemoryStore
	users    *UserService
	groups   *GroupService
	tags     *TagService
	projects *ProjectService
	tickets  *TicketService
}

func testSetup(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Tag{},
		&models.Project{},
		&models.Ticket{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s := store.New(db)
	blob := storage.NewMemoryStore()
	authenticator := auth.New(s, config.AuthConfig{JWTSecret: "test-secret", TokenExpiryMinutes: 5})

	groups := NewGroupService(s)
	tags := NewTagService(s, groups)
	return &testEnv{
		store:    s,
		blob:     blob,
		users:    NewUserService(s, authenticator, "test"),
		groups:   groups,
		tags:     tags,
		projects: NewProjectService(s, blob, tags),
		tickets:  NewTicketService(s, blob),
	}
}

// createTestUser inserts a user with the given role and returns its actor with
// the ownership scope the auth layer would derive.
func createTestUser(t *testing.T, env *testEnv, username, password string, role models.UserRole) *models.Actor {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Username: username, Password: hash, Role: role}
	if err := store.Create(env.store, &user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	actor := &models.Actor{ID: user.ID, Username: user.Username, Role: user.Role}
	if role == models.RoleUser {
		id := user.ID
		actor.FilterID = &id
	}
	return actor
}

func createTestGroup(t *testing.T, env *testEnv, actor *models.Actor, name string) *GroupOut {
	t.Helper()
	group, err := env.groups.Create(actor, GroupCreate{Name: name})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return group
}

func createTestTag(t *testing.T, env *testEnv, actor *models.Actor, name string, groupID uuid.UUID) *TagOut {
	t.Helper()
	tag, err := env.tags.Create(actor, TagCreate{Name: name, Color: "#00ADD8", GroupID: groupID})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

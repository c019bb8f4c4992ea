package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/storage"
)

func TestProjectCreate_MovesUploadedImages(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	env.blob.Put(storage.FolderProjects, storage.TempDir, "shot1.png", []byte("a"))
	env.blob.Put(storage.FolderProjects, storage.TempDir, "shot2.png", []byte("b"))

	project, err := env.projects.Create(context.Background(), alice, ProjectCreate{
		Name:   "api",
		Images: []string{"shot1.png", "shot2.png"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := env.blob.List(context.Background(), storage.FolderProjects, project.ID.String())
	if err != nil {
		t.Fatalf("list storage: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 files in project folder, got %v", stored)
	}

	temp, err := env.blob.List(context.Background(), storage.FolderProjects, storage.TempDir)
	if err != nil {
		t.Fatalf("list temp: %v", err)
	}
	if len(temp) != 0 {
		t.Errorf("expected temp area empty after create, got %v", temp)
	}
}

func TestProjectPatch_EmptyImagesDeletesAll(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	env.blob.Put(storage.FolderProjects, storage.TempDir, "shot1.png", []byte("a"))
	env.blob.Put(storage.FolderProjects, storage.TempDir, "shot2.png", []byte("b"))
	project, err := env.projects.Create(context.Background(), alice, ProjectCreate{
		Name:   "api",
		Images: []string{"shot1.png", "shot2.png"},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	movesBefore := env.blob.MoveCount

	images := []string{}
	got, err := env.projects.Patch(context.Background(), alice, project.ID, ProjectPatch{Images: &images})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Images) != 0 {
		t.Errorf("expected no images, got %v", got.Images)
	}

	if env.blob.DeleteCount != 2 {
		t.Errorf("expected 2 deletes, got %d", env.blob.DeleteCount)
	}
	if env.blob.MoveCount != movesBefore {
		t.Errorf("expected no moves during image removal, got %d extra", env.blob.MoveCount-movesBefore)
	}

	stored, err := env.blob.List(context.Background(), storage.FolderProjects, project.ID.String())
	if err != nil {
		t.Fatalf("list storage: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected empty project folder, got %v", stored)
	}
}

func TestProjectPatch_ReconcilesImageDiff(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	env.blob.Put(storage.FolderProjects, storage.TempDir, "keep.png", []byte("a"))
	env.blob.Put(storage.FolderProjects, storage.TempDir, "drop.png", []byte("b"))
	project, err := env.projects.Create(context.Background(), alice, ProjectCreate{
		Name:   "api",
		Images: []string{"keep.png", "drop.png"},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	// New upload lands in temp, then the patch swaps drop.png for new.png.
	env.blob.Put(storage.FolderProjects, storage.TempDir, "new.png", []byte("c"))
	images := []string{"keep.png", "new.png"}
	_, err = env.projects.Patch(context.Background(), alice, project.ID, ProjectPatch{Images: &images})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := env.blob.List(context.Background(), storage.FolderProjects, project.ID.String())
	if err != nil {
		t.Fatalf("list storage: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 files, got %v", stored)
	}
	for _, file := range stored {
		if file != "keep.png" && file != "new.png" {
			t.Errorf("unexpected file %q in project folder", file)
		}
	}
}

func TestProjectPatch_ReplacesTagSet(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)
	group := createTestGroup(t, env, alice, "languages")
	tagA := createTestTag(t, env, alice, "go", group.ID)
	tagB := createTestTag(t, env, alice, "sql", group.ID)

	project, err := env.projects.Create(context.Background(), alice, ProjectCreate{
		Name:   "api",
		TagIDs: []uuid.UUID{tagA.ID},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	tagIDs := []uuid.UUID{tagB.ID}
	got, err := env.projects.Patch(context.Background(), alice, project.ID, ProjectPatch{TagIDs: &tagIDs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.TagIDs) != 1 || got.TagIDs[0] != tagB.ID {
		t.Errorf("expected tag set replaced with sql, got %v", got.TagIDs)
	}
}

func TestProjectCreate_ForeignTags(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)
	bob := createTestUser(t, env, "bob", "pw", models.RoleUser)
	group := createTestGroup(t, env, alice, "languages")
	tag := createTestTag(t, env, alice, "go", group.ID)

	_, err := env.projects.Create(context.Background(), bob, ProjectCreate{
		Name:   "api",
		TagIDs: []uuid.UUID{tag.ID},
	})
	var authz *apperr.AuthorizationError
	if !errors.As(err, &authz) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

func TestProjectDelete_RemovesImageFolder(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	env.blob.Put(storage.FolderProjects, storage.TempDir, "shot.png", []byte("a"))
	project, err := env.projects.Create(context.Background(), alice, ProjectCreate{
		Name:   "api",
		Images: []string{"shot.png"},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	if err := env.projects.Delete(context.Background(), alice, project.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := env.blob.List(context.Background(), storage.FolderProjects, project.ID.String())
	if err != nil {
		t.Fatalf("list storage: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected image folder removed, got %v", stored)
	}

	_, err = env.projects.Get(project.ID)
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/storage"
)

func TestTicketCreate_Defaults(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	ticket, err := env.tickets.Create(context.Background(), alice, TicketCreate{
		Name:        "broken link",
		Description: "the repo link 404s",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.State != models.TicketOpen {
		t.Errorf("expected new ticket to be OPEN, got %q", ticket.State)
	}
	if ticket.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestTicketCreate_MovesImage(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	env.blob.Put(storage.FolderTickets, storage.TempDir, "screenshot.png", []byte("a"))
	image := "screenshot.png"
	ticket, err := env.tickets.Create(context.Background(), alice, TicketCreate{
		Name:        "broken link",
		Description: "the repo link 404s",
		Image:       &image,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := env.blob.List(context.Background(), storage.FolderTickets, ticket.ID.String())
	if err != nil {
		t.Fatalf("list storage: %v", err)
	}
	if len(stored) != 1 || stored[0] != "screenshot.png" {
		t.Fatalf("expected screenshot in ticket folder, got %v", stored)
	}
}

func TestTicketCreate_DuplicateName(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	_, err := env.tickets.Create(context.Background(), alice, TicketCreate{Name: "dup", Description: "x"})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	_, err = env.tickets.Create(context.Background(), alice, TicketCreate{Name: "dup", Description: "y"})
	var conflict *apperr.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestTicketPatch_State(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	ticket, err := env.tickets.Create(context.Background(), alice, TicketCreate{Name: "bug", Description: "x"})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	closed := models.TicketClosed
	got, err := env.tickets.Patch(alice, ticket.ID, TicketPatch{State: &closed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != models.TicketClosed {
		t.Errorf("expected CLOSED, got %q", got.State)
	}
}

func TestTicketDelete_RemovesImageFolder(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)

	env.blob.Put(storage.FolderTickets, storage.TempDir, "screenshot.png", []byte("a"))
	image := "screenshot.png"
	ticket, err := env.tickets.Create(context.Background(), alice, TicketCreate{
		Name:        "bug",
		Description: "x",
		Image:       &image,
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	if err := env.tickets.Delete(context.Background(), alice, ticket.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := env.blob.List(context.Background(), storage.FolderTickets, ticket.ID.String())
	if err != nil {
		t.Fatalf("list storage: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected image folder removed, got %v", stored)
	}
}

func TestTicketPatch_NotOwner(t *testing.T) {
	env := testSetup(t)
	alice := createTestUser(t, env, "alice", "pw", models.RoleUser)
	bob := createTestUser(t, env, "bob", "pw", models.RoleUser)

	ticket, err := env.tickets.Create(context.Background(), alice, TicketCreate{Name: "bug", Description: "x"})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	closed := models.TicketClosed
	_, err = env.tickets.Patch(bob, ticket.ID, TicketPatch{State: &closed})
	var authz *apperr.AuthorizationError
	if !errors.As(err, &authz) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

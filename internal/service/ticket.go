package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/query"
	"github.com/lfms6164/digital-folder-api/internal/storage"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// TicketService manages tickets and their attached image.
type TicketService struct {
	store   *store.Store
	storage storage.Client
}

// NewTicketService creates a TicketService.
func NewTicketService(s *store.Store, blob storage.Client) *TicketService {
	return &TicketService{store: s, storage: blob}
}

// List returns tickets visible to the actor.
func (s *TicketService) List(actor *models.Actor, params *query.Params) (*Page[TicketOut], error) {
	tickets, count, err := store.List[models.Ticket](s.store, actor, params)
	if err != nil {
		return nil, err
	}

	items := make([]TicketOut, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, ticketOut(&ticket))
	}
	return &Page[TicketOut]{Items: items, Count: count}, nil
}

// Get returns a single ticket by id.
func (s *TicketService) Get(id uuid.UUID) (*TicketOut, error) {
	ticket, err := store.GetByID[models.Ticket](s.store, id)
	if err != nil {
		return nil, err
	}
	out := ticketOut(ticket)
	return &out, nil
}

// Create inserts a ticket owned by the actor and moves its uploaded image,
// if any, from the temp area into the ticket's folder.
func (s *TicketService) Create(ctx context.Context, actor *models.Actor, req TicketCreate) (*TicketOut, error) {
	if err := ValidateUnique[models.Ticket](s.store, req.Name); err != nil {
		return nil, err
	}

	ticket := models.Ticket{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		State:       models.TicketOpen,
		CreatedBy:   actor.ID,
	}
	if err := store.Create(s.store, &ticket); err != nil {
		return nil, err
	}

	if ticket.Image != nil && *ticket.Image != "" {
		if err := s.storage.Move(ctx, storage.FolderTickets, []string{*ticket.Image}, ticket.ID.String()); err != nil {
			return nil, err
		}
	}

	return s.Get(ticket.ID)
}

// Patch applies a partial update to a ticket owned by the actor.
func (s *TicketService) Patch(actor *models.Actor, id uuid.UUID, req TicketPatch) (*TicketOut, error) {
	if err := ValidateOwnership(actor, s, []uuid.UUID{id}, false); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		if err := ValidateUnique[models.Ticket](s.store, *req.Name); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.State != nil {
		updates["state"] = *req.State
	}

	if len(updates) > 0 {
		if err := store.Update[models.Ticket](s.store, id, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete removes a ticket and its image folder.
func (s *TicketService) Delete(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	if err := ValidateOwnership(actor, s, []uuid.UUID{id}, false); err != nil {
		return err
	}

	ticket, err := store.GetByID[models.Ticket](s.store, id)
	if err != nil {
		return err
	}
	if ticket.Image != nil && *ticket.Image != "" {
		if err := s.storage.DeleteDir(ctx, storage.FolderTickets, id.String()); err != nil {
			return err
		}
	}

	return store.Delete[models.Ticket](s.store, id)
}

func (s *TicketService) owner(id uuid.UUID) (string, uuid.UUID, error) {
	ticket, err := store.GetByID[models.Ticket](s.store, id)
	if err != nil {
		return "", uuid.Nil, err
	}
	return ticket.Name, ticket.CreatedBy, nil
}

func ticketOut(ticket *models.Ticket) TicketOut {
	return TicketOut{
		ID:          ticket.ID,
		Name:        ticket.Name,
		Description: ticket.Description,
		Image:       ticket.Image,
		State:       ticket.State,
		CreatedBy:   ticket.CreatedBy,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

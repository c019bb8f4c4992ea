package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfms6164/digital-folder-api/internal/auth"
	"github.com/lfms6164/digital-folder-api/internal/service"
)

// TicketHandler serves the ticket endpoints.
type TicketHandler struct {
	tickets *service.TicketService
	users   *service.UserService
}

// NewTicketHandler creates a TicketHandler.
func NewTicketHandler(tickets *service.TicketService, users *service.UserService) *TicketHandler {
	return &TicketHandler{tickets: tickets, users: users}
}

// List returns a paginated page of tickets.
func (h *TicketHandler) List(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	params, err := parseListParams(c, h.users)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := h.tickets.List(actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns a single ticket.
func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ticket, err := h.tickets.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Create creates a ticket.
func (h *TicketHandler) Create(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req service.TicketCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ticket, err := h.tickets.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// Patch partially updates a ticket.
func (h *TicketHandler) Patch(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.TicketPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ticket, err := h.tickets.Patch(actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Delete removes a ticket.
func (h *TicketHandler) Delete(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tickets.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfms6164/digital-folder-api/internal/auth"
	"github.com/lfms6164/digital-folder-api/internal/service"
)

// GroupHandler serves the group endpoints.
type GroupHandler struct {
	groups *service.GroupService
	users  *service.UserService
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(groups *service.GroupService, users *service.UserService) *GroupHandler {
	return &GroupHandler{groups: groups, users: users}
}

// List returns a paginated page of groups.
func (h *GroupHandler) List(c *gin.Context) {
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

	page, err := h.groups.List(actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns a single group.
func (h *GroupHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	group, err := h.groups.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// Create creates a group.
func (h *GroupHandler) Create(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req service.GroupCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.groups.Create(actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// Patch partially updates a group.
func (h *GroupHandler) Patch(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.GroupPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.groups.Patch(actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// Delete removes a group.
func (h *GroupHandler) Delete(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.groups.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

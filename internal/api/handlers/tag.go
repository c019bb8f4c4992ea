package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfms6164/digital-folder-api/internal/auth"
	"github.com/lfms6164/digital-folder-api/internal/service"
)

// TagHandler serves the tag endpoints.
type TagHandler struct {
	tags  *service.TagService
	users *service.UserService
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(tags *service.TagService, users *service.UserService) *TagHandler {
	return &TagHandler{tags: tags, users: users}
}

// List returns a paginated page of tags.
func (h *TagHandler) List(c *gin.Context) {
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

	page, err := h.tags.List(actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns a single tag.
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tag, err := h.tags.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Create creates a tag.
func (h *TagHandler) Create(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req service.TagCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tag, err := h.tags.Create(actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// Patch partially updates a tag.
func (h *TagHandler) Patch(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.TagPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tag, err := h.tags.Patch(actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Delete removes a tag.
func (h *TagHandler) Delete(c *gin.Context) {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tags.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/models"
)

// Page is a paginated list response: the requested slice of rows plus the
// total match count before pagination.
type Page[T any] struct {
	Items []T   `json:"items"`
	Count int64 `json:"count"`
}

// GroupCreate holds parameters for creating a group.
type GroupCreate struct {
	Name string `json:"name" binding:"required"`
}

// GroupPatch holds a partial group update. Nil fields are left unchanged.
type GroupPatch struct {
	Name *string `json:"name"`
}

// GroupOut is the outward group shape.
type GroupOut struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	HasTags bool      `json:"has_tags"`
	Tags    []TagOut  `json:"tags"`
}

// TagCreate holds parameters for creating a tag.
type TagCreate struct {
	Name    string    `json:"name" binding:"required"`
	Icon    *string   `json:"icon"`
	Color   string    `json:"color" binding:"required"`
	GroupID uuid.UUID `json:"group_id" binding:"required"`
}

// TagPatch holds a partial tag update.
type TagPatch struct {
	Name    *string    `json:"name"`
	Icon    *string    `json:"icon"`
	Color   *string    `json:"color"`
	GroupID *uuid.UUID `json:"group_id"`
}

// TagOut is the outward tag shape.
type TagOut struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      *string   `json:"icon,omitempty"`
	Color     string    `json:"color"`
	GroupID   uuid.UUID `json:"group_id"`
	CreatedBy uuid.UUID `json:"created_by"`
}

// ProjectCreate holds parameters for creating a project.
type ProjectCreate struct {
	Name         string      `json:"name" binding:"required"`
	RepoURL      *string     `json:"repo_url"`
	Introduction *string     `json:"introduction"`
	Description  *string     `json:"description"`
	Images       []string    `json:"images"`
	TagIDs       []uuid.UUID `json:"tag_ids"`
}

// ProjectPatch holds a partial project update. A non-nil Images drives the
// image move/delete reconciliation; a non-nil TagIDs replaces the tag set.
type ProjectPatch struct {
	Name         *string      `json:"name"`
	RepoURL      *string      `json:"repo_url"`
	Introduction *string      `json:"introduction"`
	Description  *string      `json:"description"`
	Images       *[]string    `json:"images"`
	TagIDs       *[]uuid.UUID `json:"tag_ids"`
}

// ProjectOut is the outward project shape.
type ProjectOut struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	RepoURL      *string     `json:"repo_url,omitempty"`
	Introduction *string     `json:"introduction,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Tags         []TagOut    `json:"tags"`
	TagIDs       []uuid.UUID `json:"tag_ids"`
	Images       []string    `json:"images,omitempty"`
	CreatedBy    uuid.UUID   `json:"created_by"`
}

// TicketCreate holds parameters for creating a ticket.
type TicketCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Image       *string `json:"image"`
}

// TicketPatch holds a partial ticket update.
type TicketPatch struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Image       *string             `json:"image"`
	State       *models.TicketState `json:"state"`
}

// TicketOut is the outward ticket shape.
type TicketOut struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Image       *string            `json:"image,omitempty"`
	State       models.TicketState `json:"state"`
	CreatedBy   uuid.UUID          `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// UserOut is the role-scoped outward user shape.
type UserOut struct {
	ID       uuid.UUID       `json:"id"`
	Username string          `json:"username"`
	Env      string          `json:"env"`
	Role     models.UserRole `json:"role"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserOut `json:"user"`
}

package models

import "github.com/google/uuid"

// Actor is the authenticated caller as seen by the data access and
// authorization layers. FilterID is the ownership scope applied to list
// queries: nil for admins (see everything), the actor's own id for USER, and
// the admin user's id for VIEWER (read-scoped to admin-created rows).
type Actor struct {
	ID       uuid.UUID
	Username string
	Role     UserRole
	FilterID *uuid.UUID
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a *Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanWrite reports whether the actor may create, update or delete rows.
// Viewers are read-only.
func (a *Actor) CanWrite() bool { return a.Role == RoleAdmin || a.Role == RoleUser }

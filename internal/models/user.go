package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole enumerates the access levels known to the system.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleUser   UserRole = "USER"
	RoleViewer UserRole = "VIEWER"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}

// User represents a system user. Users are created by seed scripts and are
// immutable in the normal request flow.
type User struct {
	ID       uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Password string    `gorm:"not null" json:"-"` // bcrypt hash
	Role     UserRole  `gorm:"not null;index" json:"role"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

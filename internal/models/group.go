package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a named container for tags. A group can only be deleted while it
// has no tags.
type Group struct {
	ID        uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedBy uuid.UUID `gorm:"type:text;not null;index" json:"created_by"`
	Tags      []Tag     `gorm:"foreignKey:GroupID" json:"tags,omitempty"`
}

// BeforeCreate hook to generate UUID
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

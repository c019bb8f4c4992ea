package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a colored label belonging to exactly one group, attachable to many
// projects.
type Tag struct {
	ID        uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Icon      *string   `json:"icon,omitempty"`
	Color     string    `gorm:"not null" json:"color"`
	GroupID   uuid.UUID `gorm:"type:text;not null;index" json:"group_id"`
	CreatedBy uuid.UUID `gorm:"type:text;not null;index" json:"created_by"`
	Projects  []Project `gorm:"many2many:project_tag_relations;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook to generate UUID
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

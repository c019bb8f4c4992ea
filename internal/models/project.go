package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores an ordered list of strings as a JSON-encoded TEXT column,
// portable across SQLite and PostgreSQL.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Project is a portfolio entry carrying an ordered list of image filenames
// and a many-to-many relation to tags.
type Project struct {
	ID           uuid.UUID  `gorm:"type:text;primary_key" json:"id"`
	Name         string     `gorm:"uniqueIndex;not null" json:"name"`
	RepoURL      *string    `json:"repo_url,omitempty"`
	Introduction *string    `gorm:"type:text" json:"introduction,omitempty"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"`
	Images       StringList `gorm:"type:text" json:"images,omitempty"`
	CreatedBy    uuid.UUID  `gorm:"type:text;not null;index" json:"created_by"`
	Tags         []Tag      `gorm:"many2many:project_tag_relations;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

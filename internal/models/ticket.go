package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketState represents the state of a ticket
type TicketState string

const (
	TicketOpen   TicketState = "OPEN"
	TicketClosed TicketState = "CLOSED"
)

// Ticket is a work item with an optional attached image. Transitions between
// OPEN and CLOSED are caller-driven.
type Ticket struct {
	ID          uuid.UUID   `gorm:"type:text;primary_key" json:"id"`
	Name        string      `gorm:"uniqueIndex;not null" json:"name"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Image       *string     `json:"image,omitempty"`
	State       TicketState `gorm:"not null;default:'OPEN'" json:"state"`
	CreatedBy   uuid.UUID   `gorm:"type:text;not null;index" json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// BeforeCreate hook to generate UUID
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.State == "" {
		t.State = TicketOpen
	}
	return nil
}

// Package models contains domain entities and business models for the tournament directory
package models

import (
	"time"

	"github.com/google/uuid"
)

type Venue struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UUID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_venues_uuid" json:"uuid"`
	Name    string    `gorm:"size:255;not null;index:idx_venues_name" json:"name"`
	Address *string   `gorm:"size:255" json:"address,omitempty"`
	City    string    `gorm:"size:100;not null;index:idx_venues_city" json:"city"`
	State   string    `gorm:"size:2;not null;index:idx_venues_state" json:"state"`
	Phone   *string   `gorm:"size:20" json:"phone,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tournaments []Tournament `gorm:"foreignKey:VenueID" json:"-"`
}

func (Venue) TableName() string {
	return "venues"
}

// VenueFilter represents filter criteria for venue queries
type VenueFilter struct {
	ID    *uint
	UUID  *uuid.UUID
	Name  *string
	City  *string
	State *string
}

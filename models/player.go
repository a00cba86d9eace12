// Package models contains domain entities and business models for the tournament directory
package models

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_players_uuid;index:idx_players_uuid" json:"uuid"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uk_players_email" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // Never serialize password hash
	DisplayName  string    `gorm:"size:60;not null" json:"display_name"`

	// Optional home location, used to prefill tournament searches
	HomeState *string `gorm:"size:2" json:"home_state,omitempty"`
	HomeCity  *string `gorm:"size:100" json:"home_city,omitempty"`

	// Optional Fargo rating of the player
	FargoRating *int `json:"fargo_rating,omitempty"`

	// Status
	IsActive *bool `gorm:"default:true;index:idx_players_is_active" json:"is_active"`
	IsAdmin  *bool `gorm:"default:false" json:"is_admin"`

	// Timestamps
	CreatedAt   time.Time  `gorm:"index:idx_players_created_at" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `gorm:"index:idx_players_last_login_at" json:"last_login_at,omitempty"`

	// Relations
	SearchAlerts []SearchAlert   `gorm:"foreignKey:PlayerID" json:"-"`
	Favorites    []Favorite      `gorm:"foreignKey:PlayerID" json:"-"`
	Sessions     []PlayerSession `gorm:"foreignKey:PlayerID" json:"-"`
	AuditLogs    []AuditLog      `gorm:"foreignKey:PlayerID" json:"-"`
}

func (Player) TableName() string {
	return "players"
}

// PlayerFilter represents filter criteria for player queries
type PlayerFilter struct {
	ID              *uint
	UUID            *uuid.UUID
	Email           *string
	IsActive        *bool
	IsAdmin         *bool
	HomeState       *string
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	LastLoginAfter  *time.Time
	LastLoginBefore *time.Time
}

// Package models contains domain entities and business models for the tournament directory
package models

import (
	"time"

	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// Favorite marks a tournament a player wants to keep an eye on
type Favorite struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	PlayerID     uint `gorm:"not null;uniqueIndex:uk_favorites_pair;index:idx_favorites_player_id" json:"player_id"`
	TournamentID uint `gorm:"not null;uniqueIndex:uk_favorites_pair;index:idx_favorites_tournament_id" json:"tournament_id"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Player     *Player     `gorm:"foreignKey:PlayerID;references:ID;constraint:OnDelete:CASCADE" json:"player,omitempty"`
	Tournament *Tournament `gorm:"foreignKey:TournamentID;references:ID;constraint:OnDelete:CASCADE" json:"tournament,omitempty"`
}

// TableName returns the table name for the model
func (Favorite) TableName() string {
	return "favorites"
}

// BeforeCreate is called before creating a new record
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = utils.UTCNow()
	}
	return nil
}

// FavoriteFilter represents filter criteria for favorite queries
type FavoriteFilter struct {
	ID           *uint
	PlayerID     *uint
	TournamentID *uint
}

// Package models contains domain entities and business models for the tournament directory
package models

import (
	"time"

	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// AlertMatch records that a specific alert matched a specific tournament.
// The composite unique index guarantees at most one row per
// (alert_id, tournament_id) pair even when matching reruns concurrently.
type AlertMatch struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	AlertID      uint `gorm:"not null;uniqueIndex:uk_alert_matches_pair;index:idx_alert_matches_alert_id" json:"alert_id"`
	TournamentID uint `gorm:"not null;uniqueIndex:uk_alert_matches_pair;index:idx_alert_matches_tournament_id" json:"tournament_id"`

	CreatedAt time.Time `gorm:"index:idx_alert_matches_created_at" json:"created_at"`

	// Relations
	Alert      *SearchAlert `gorm:"foreignKey:AlertID;references:ID;constraint:OnDelete:CASCADE" json:"alert,omitempty"`
	Tournament *Tournament  `gorm:"foreignKey:TournamentID;references:ID;constraint:OnDelete:CASCADE" json:"tournament,omitempty"`
}

// TableName returns the table name for the model
func (AlertMatch) TableName() string {
	return "alert_matches"
}

// BeforeCreate is called before creating a new record
func (m *AlertMatch) BeforeCreate(tx *gorm.DB) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = utils.UTCNow()
	}
	return nil
}

// AlertMatchFilter represents filter criteria for alert match queries
type AlertMatchFilter struct {
	ID            *uint
	AlertID       *uint
	TournamentID  *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

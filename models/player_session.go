// Package models contains domain entities and business models for the tournament directory
package models

import (
	"encoding/json"
	"time"

	"github.com/tannermartz/breakline/utils"
)

type PlayerSession struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	PlayerID     uint            `gorm:"not null;index:idx_sessions_player_id" json:"player_id"`
	Player       Player          `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	SessionToken string          `gorm:"size:512;not null;uniqueIndex:idx_sessions_session_token" json:"-"` // Never serialize token
	RefreshToken *string         `gorm:"size:512;uniqueIndex:idx_sessions_refresh_token" json:"-"`          // Never serialize refresh token
	DeviceInfo   json.RawMessage `gorm:"type:jsonb" json:"device_info,omitempty"`
	IPAddress    *string         `gorm:"type:inet;index:idx_sessions_ip_address" json:"ip_address,omitempty"`
	UserAgent    *string         `gorm:"type:text" json:"user_agent,omitempty"`
	IsActive     *bool           `gorm:"default:true;index:idx_sessions_is_active" json:"is_active"`

	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	LastAccessedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_sessions_last_accessed" json:"last_accessed_at"`
	ExpiresAt      time.Time `gorm:"not null;index:idx_sessions_expires_at" json:"expires_at"`
}

func (PlayerSession) TableName() string {
	return "player_sessions"
}

func (s *PlayerSession) IsExpired() bool {
	return utils.IsExpired(s.ExpiresAt)
}

func (s *PlayerSession) IsValid() bool {
	return utils.IsTrue(s.IsActive) && !s.IsExpired()
}

// PlayerSessionFilter represents filter criteria for session queries
type PlayerSessionFilter struct {
	ID            *uint
	PlayerID      *uint
	IsActive      *bool
	IPAddress     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	ExpiresAfter  *time.Time
	ExpiresBefore *time.Time
}

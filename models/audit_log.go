// Package models contains domain entities and business models for the tournament directory
package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	PlayerID     *uint           `gorm:"index:idx_audit_player_id" json:"player_id,omitempty"`
	Player       *Player         `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Action       string          `gorm:"size:60;not null;index:idx_audit_action" json:"action"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	IPAddress    *string         `gorm:"type:inet" json:"ip_address,omitempty"`
	UserAgent    *string         `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID    *string         `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Metadata     json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	Success      *bool           `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action constants
const (
	AuditActionSignupCompleted    = "signup_completed"
	AuditActionLoginSuccessful    = "login_successful"
	AuditActionLoginFailed        = "login_failed"
	AuditActionLogout             = "logout"
	AuditActionPasswordChanged    = "password_changed"
	AuditActionAccountActivated   = "account_activated"
	AuditActionAccountDeactivated = "account_deactivated"

	AuditActionTournamentCreated      = "tournament_created"
	AuditActionTournamentUpdated      = "tournament_updated"
	AuditActionTournamentApproved     = "tournament_approved"
	AuditActionTournamentRejected     = "tournament_rejected"
	AuditActionTournamentCancelled    = "tournament_cancelled"
	AuditActionTournamentCreateFailed = "tournament_create_failed"
	AuditActionTournamentUpdateFailed = "tournament_update_failed"

	AuditActionAlertCreated       = "alert_created"
	AuditActionAlertUpdated       = "alert_updated"
	AuditActionAlertDeleted       = "alert_deleted"
	AuditActionAlertCreateFailed  = "alert_create_failed"
	AuditActionAlertMatchRecorded = "alert_match_recorded"

	AuditActionFavoriteAdded   = "favorite_added"
	AuditActionFavoriteRemoved = "favorite_removed"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	PlayerID      *uint
	Action        *string
	Success       *bool
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}

func (a *AuditLog) IsSecurityEvent() bool {
	securityActions := map[string]bool{
		AuditActionLoginSuccessful:    true,
		AuditActionLoginFailed:        true,
		AuditActionPasswordChanged:    true,
		AuditActionAccountActivated:   true,
		AuditActionAccountDeactivated: true,
	}
	return securityActions[a.Action]
}

// Package models contains domain entities and business models for the tournament directory
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// ScotchDoublesSuffix marks the team variant of a game type code,
// e.g. "9-ball-scotch-doubles" is the scotch-doubles variant of "9-ball".
const ScotchDoublesSuffix = "-scotch-doubles"

// TournamentStatus represents the moderation status of a tournament listing
type TournamentStatus string

const (
	TournamentStatusPending   TournamentStatus = "pending"
	TournamentStatusApproved  TournamentStatus = "approved"
	TournamentStatusRejected  TournamentStatus = "rejected"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

// String returns the string representation of the status
func (s TournamentStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentStatusPending, TournamentStatusApproved,
		TournamentStatusRejected, TournamentStatusCancelled:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for TournamentStatus
func (s *TournamentStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = TournamentStatus(v)
	case []byte:
		*s = TournamentStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TournamentStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for TournamentStatus
func (s TournamentStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid TournamentStatus: %s", s)
	}
	return string(s), nil
}

// Tournament represents a directory listing for a scheduled event
type Tournament struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_tournaments_uuid;index:idx_tournaments_uuid" json:"uuid"`
	Name string    `gorm:"size:255;not null" json:"name"`

	// Event attributes the alert matcher evaluates
	GameType         string     `gorm:"size:60;not null;index:idx_tournaments_game_type" json:"game_type"`
	TournamentFormat string     `gorm:"size:60;not null" json:"tournament_format"`
	TableSize        string     `gorm:"size:20;not null" json:"table_size"`
	Equipment        *string    `gorm:"size:255" json:"equipment,omitempty"`
	EntryFee         *float64   `json:"entry_fee,omitempty"`
	MaxFargo         *int       `json:"max_fargo,omitempty"`
	ReportsToFargo   *bool      `gorm:"default:false" json:"reports_to_fargo"`
	OpenTournament   *bool      `gorm:"default:true" json:"open_tournament"`
	TournamentDate   time.Time  `gorm:"type:date;not null;index:idx_tournaments_date" json:"tournament_date"`
	StartTime        *string    `gorm:"size:10" json:"start_time,omitempty"`
	Description      *string    `gorm:"type:text" json:"description,omitempty"`

	// Optional venue; listings submitted without one carry no location data
	VenueID *uint  `gorm:"index:idx_tournaments_venue_id" json:"venue_id,omitempty"`
	Venue   *Venue `gorm:"foreignKey:VenueID;references:ID" json:"venue,omitempty"`

	Status    TournamentStatus `gorm:"type:tournament_status;not null;default:'pending';index:idx_tournaments_status" json:"status"`
	CreatedBy uint             `gorm:"not null;index:idx_tournaments_created_by" json:"created_by"`
	Creator   *Player          `gorm:"foreignKey:CreatedBy;references:ID" json:"creator,omitempty"`

	CreatedAt time.Time  `gorm:"index:idx_tournaments_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	AlertMatches []AlertMatch `gorm:"foreignKey:TournamentID" json:"-"`
	Favorites    []Favorite   `gorm:"foreignKey:TournamentID" json:"-"`
}

// TableName returns the table name for the model
func (Tournament) TableName() string {
	return "tournaments"
}

// BeforeCreate is called before creating a new record
func (t *Tournament) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == uuid.Nil {
		t.UUID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TournamentStatusPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (t *Tournament) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// IsScotchDoubles reports whether the game type is a scotch-doubles variant
func (t *Tournament) IsScotchDoubles() bool {
	return strings.HasSuffix(t.GameType, ScotchDoublesSuffix)
}

// BaseGameType returns the game type with any scotch-doubles suffix removed
func (t *Tournament) BaseGameType() string {
	return strings.TrimSuffix(t.GameType, ScotchDoublesSuffix)
}

// IsEditable checks if the tournament listing can still be edited
func (t *Tournament) IsEditable() bool {
	return t.Status == TournamentStatusPending ||
		t.Status == TournamentStatusApproved
}

// CanTransitionTo checks if the tournament can transition to the given status
func (t *Tournament) CanTransitionTo(newStatus TournamentStatus) bool {
	switch t.Status {
	case TournamentStatusPending:
		return newStatus == TournamentStatusApproved ||
			newStatus == TournamentStatusRejected ||
			newStatus == TournamentStatusCancelled
	case TournamentStatusApproved:
		return newStatus == TournamentStatusCancelled
	case TournamentStatusRejected:
		return newStatus == TournamentStatusApproved
	default:
		return false
	}
}

// GetStatusDisplayName returns a human-readable status name
func (t *Tournament) GetStatusDisplayName() string {
	switch t.Status {
	case TournamentStatusPending:
		return "Pending Review"
	case TournamentStatusApproved:
		return "Approved"
	case TournamentStatusRejected:
		return "Rejected"
	case TournamentStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// TournamentFilter represents filter criteria for tournament queries
type TournamentFilter struct {
	ID             *uint
	UUID           *uuid.UUID
	GameType       *string
	Format         *string
	TableSize      *string
	Status         *TournamentStatus
	VenueID        *uint
	VenueState     *string
	CreatedBy      *uint
	DateAfter      *time.Time
	DateBefore     *time.Time
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	MinEntryFee    *float64
	MaxEntryFee    *float64
	ReportsToFargo *bool
	OpenTournament *bool
}

// Package models contains domain entities and business models for the tournament directory
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// FilterCriteria is the sparse constraint set embedded in a search alert.
// Every field is optional; an absent field imposes no constraint.
type FilterCriteria struct {
	GameType         *string  `json:"gameType,omitempty"`
	TournamentFormat *string  `json:"tournamentFormat,omitempty"`
	TableSize        *string  `json:"tableSize,omitempty"`
	Equipment        *string  `json:"equipment,omitempty"`
	EntryFeeMin      *float64 `json:"entryFeeMin,omitempty"`
	EntryFeeMax      *float64 `json:"entryFeeMax,omitempty"`
	FargoMax         *int     `json:"fargoMax,omitempty"`
	ReportsToFargo   *bool    `json:"reportsToFargo,omitempty"`
	OpenTournament   *bool    `json:"openTournament,omitempty"`
	State            *string  `json:"state,omitempty"`
	City             *string  `json:"city,omitempty"`

	// Dates are ISO calendar dates (2006-01-02)
	DateFrom *string `json:"dateFrom,omitempty"`
	DateTo   *string `json:"dateTo,omitempty"`

	// Weekday indices, 0=Sunday through 6=Saturday
	DaysOfWeek []int `json:"daysOfWeek,omitempty"`
}

// Value implements the driver.Valuer interface for FilterCriteria
func (c FilterCriteria) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for FilterCriteria
func (c *FilterCriteria) Scan(value any) error {
	if value == nil {
		*c = FilterCriteria{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FilterCriteria", value)
	}

	return json.Unmarshal(bytes, c)
}

// IsEmpty reports whether no constraint is set at all
func (c FilterCriteria) IsEmpty() bool {
	return c.GameType == nil &&
		c.TournamentFormat == nil &&
		c.TableSize == nil &&
		c.Equipment == nil &&
		c.EntryFeeMin == nil &&
		c.EntryFeeMax == nil &&
		c.FargoMax == nil &&
		c.ReportsToFargo == nil &&
		c.OpenTournament == nil &&
		c.State == nil &&
		c.City == nil &&
		c.DateFrom == nil &&
		c.DateTo == nil &&
		len(c.DaysOfWeek) == 0
}

// SearchAlert is a saved, named filter a player wants tournaments matched against
type SearchAlert struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UUID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_search_alerts_uuid;index:idx_search_alerts_uuid" json:"uuid"`
	PlayerID uint      `gorm:"not null;index:idx_search_alerts_player_id" json:"player_id"`
	Player   *Player   `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`

	Name        string         `gorm:"size:100;not null" json:"name"`
	Description *string        `gorm:"size:255" json:"description,omitempty"`
	Criteria    FilterCriteria `gorm:"type:jsonb;not null" json:"filter_criteria"`
	IsActive    *bool          `gorm:"default:true;index:idx_search_alerts_is_active" json:"is_active"`

	// Bookkeeping maintained only by the match recorder. MatchCount equals
	// the number of AlertMatch rows ever created for this alert and is
	// never decremented.
	MatchCount    int        `gorm:"not null;default:0" json:"match_count"`
	LastMatchDate *time.Time `json:"last_match_date,omitempty"`

	CreatedAt time.Time  `gorm:"index:idx_search_alerts_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	Matches []AlertMatch `gorm:"foreignKey:AlertID" json:"-"`
}

// TableName returns the table name for the model
func (SearchAlert) TableName() string {
	return "search_alerts"
}

// BeforeCreate is called before creating a new record
func (a *SearchAlert) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (a *SearchAlert) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// SearchAlertFilter represents filter criteria for search alert queries
type SearchAlertFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	PlayerID      *uint
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

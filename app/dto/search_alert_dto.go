// Package dto contains Data Transfer Objects for API request and response structures
package dto

// FilterCriteriaDTO mirrors the sparse constraint set of a search alert
type FilterCriteriaDTO struct {
	GameType         *string  `json:"gameType,omitempty" validate:"omitempty,max=60"`
	TournamentFormat *string  `json:"tournamentFormat,omitempty" validate:"omitempty,max=60"`
	TableSize        *string  `json:"tableSize,omitempty" validate:"omitempty,max=20"`
	Equipment        *string  `json:"equipment,omitempty" validate:"omitempty,max=255"`
	EntryFeeMin      *float64 `json:"entryFeeMin,omitempty" validate:"omitempty,min=0"`
	EntryFeeMax      *float64 `json:"entryFeeMax,omitempty" validate:"omitempty,min=0"`
	FargoMax         *int     `json:"fargoMax,omitempty" validate:"omitempty,min=100,max=900"`
	ReportsToFargo   *bool    `json:"reportsToFargo,omitempty"`
	OpenTournament   *bool    `json:"openTournament,omitempty"`
	State            *string  `json:"state,omitempty" validate:"omitempty,len=2"`
	City             *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	DateFrom         *string  `json:"dateFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTo           *string  `json:"dateTo,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DaysOfWeek       []int    `json:"daysOfWeek,omitempty" validate:"omitempty,dive,min=0,max=6"`
}

// CreateSearchAlertRequest represents the alert creation form
type CreateSearchAlertRequest struct {
	PlayerID uint `json:"-"`

	Name        string            `json:"name" validate:"required,min=2,max=100"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=255"`
	Criteria    FilterCriteriaDTO `json:"criteria"`
	IsActive    *bool             `json:"is_active,omitempty"`
}

// CreateSearchAlertResponse represents the response after alert creation
type CreateSearchAlertResponse struct {
	Message string         `json:"message"`
	Alert   SearchAlertDTO `json:"alert"`
}

// UpdateSearchAlertRequest represents the alert edit form; nil fields keep their value
type UpdateSearchAlertRequest struct {
	PlayerID uint   `json:"-"`
	UUID     string `json:"-" validate:"required,uuid"`

	Name        *string            `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=255"`
	Criteria    *FilterCriteriaDTO `json:"criteria,omitempty"`
	IsActive    *bool              `json:"is_active,omitempty"`
}

// UpdateSearchAlertResponse represents the response after an alert edit
type UpdateSearchAlertResponse struct {
	Message string         `json:"message"`
	Alert   SearchAlertDTO `json:"alert"`
}

// ListSearchAlertsRequest represents the request for a player's alerts
type ListSearchAlertsRequest struct {
	PaginationRequest
	PlayerID uint `json:"-"`
}

// ListSearchAlertsResponse represents a page of a player's alerts
type ListSearchAlertsResponse struct {
	Message string           `json:"message"`
	Alerts  []SearchAlertDTO `json:"alerts"`
	Total   int64            `json:"total"`
}

// DeleteSearchAlertRequest represents an alert deletion
type DeleteSearchAlertRequest struct {
	PlayerID uint   `json:"-"`
	UUID     string `json:"-" validate:"required,uuid"`
}

// DeleteSearchAlertResponse represents the response after alert deletion
type DeleteSearchAlertResponse struct {
	Message string `json:"message"`
}

// ListAlertMatchesRequest represents the request for an alert's match history
type ListAlertMatchesRequest struct {
	PaginationRequest
	PlayerID uint   `json:"-"`
	UUID     string `json:"-" validate:"required,uuid"`
}

// ListAlertMatchesResponse represents a page of match history for one alert
type ListAlertMatchesResponse struct {
	Message string          `json:"message"`
	Matches []AlertMatchDTO `json:"matches"`
}

// PreviewSearchAlertRequest represents a dry-run of criteria against the directory
type PreviewSearchAlertRequest struct {
	PlayerID uint              `json:"-"`
	Criteria FilterCriteriaDTO `json:"criteria"`
}

// PreviewSearchAlertResponse reports how many approved tournaments the criteria match
type PreviewSearchAlertResponse struct {
	Message     string `json:"message"`
	Description string `json:"description"`
	MatchCount  int    `json:"match_count"`
}

// SearchAlertDTO represents search alert data for API responses
type SearchAlertDTO struct {
	ID            uint              `json:"id"`
	UUID          string            `json:"uuid"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	Criteria      FilterCriteriaDTO `json:"criteria"`
	IsActive      *bool             `json:"is_active"`
	MatchCount    int               `json:"match_count"`
	LastMatchDate *string           `json:"last_match_date,omitempty"`
	CreatedAt     string            `json:"created_at"`
}

// AlertMatchDTO represents one recorded alert match for API responses
type AlertMatchDTO struct {
	ID         uint           `json:"id"`
	MatchedAt  string         `json:"matched_at"`
	Tournament *TournamentDTO `json:"tournament,omitempty"`
}

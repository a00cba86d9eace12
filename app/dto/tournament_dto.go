// Package dto contains Data Transfer Objects for API request and response structures
package dto

// CreateTournamentRequest represents the tournament submission form
type CreateTournamentRequest struct {
	PlayerID uint `json:"-"`

	Name             string   `json:"name" validate:"required,min=3,max=255"`
	GameType         string   `json:"game_type" validate:"required,max=60"`
	TournamentFormat string   `json:"tournament_format" validate:"required,max=60"`
	TableSize        string   `json:"table_size" validate:"required,max=20"`
	Equipment        *string  `json:"equipment,omitempty" validate:"omitempty,max=255"`
	EntryFee         *float64 `json:"entry_fee,omitempty" validate:"omitempty,min=0"`
	MaxFargo         *int     `json:"max_fargo,omitempty" validate:"omitempty,min=100,max=900"`
	ReportsToFargo   *bool    `json:"reports_to_fargo,omitempty"`
	OpenTournament   *bool    `json:"open_tournament,omitempty"`
	TournamentDate   string   `json:"tournament_date" validate:"required,datetime=2006-01-02"`
	StartTime        *string  `json:"start_time,omitempty" validate:"omitempty,max=10"`
	Description      *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	VenueUUID        *string  `json:"venue_uuid,omitempty" validate:"omitempty,uuid"`
}

// CreateTournamentResponse represents the response after tournament submission
type CreateTournamentResponse struct {
	Message    string        `json:"message"`
	Tournament TournamentDTO `json:"tournament"`
}

// UpdateTournamentRequest represents the tournament edit form; nil fields keep their value
type UpdateTournamentRequest struct {
	PlayerID uint   `json:"-"`
	UUID     string `json:"-" validate:"required,uuid"`

	Name             *string  `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	GameType         *string  `json:"game_type,omitempty" validate:"omitempty,max=60"`
	TournamentFormat *string  `json:"tournament_format,omitempty" validate:"omitempty,max=60"`
	TableSize        *string  `json:"table_size,omitempty" validate:"omitempty,max=20"`
	Equipment        *string  `json:"equipment,omitempty" validate:"omitempty,max=255"`
	EntryFee         *float64 `json:"entry_fee,omitempty" validate:"omitempty,min=0"`
	MaxFargo         *int     `json:"max_fargo,omitempty" validate:"omitempty,min=100,max=900"`
	ReportsToFargo   *bool    `json:"reports_to_fargo,omitempty"`
	OpenTournament   *bool    `json:"open_tournament,omitempty"`
	TournamentDate   *string  `json:"tournament_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime        *string  `json:"start_time,omitempty" validate:"omitempty,max=10"`
	Description      *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	VenueUUID        *string  `json:"venue_uuid,omitempty" validate:"omitempty,uuid"`
}

// UpdateTournamentResponse represents the response after a tournament edit
type UpdateTournamentResponse struct {
	Message    string        `json:"message"`
	Tournament TournamentDTO `json:"tournament"`
}

// ListTournamentsRequest represents tournament directory search parameters
type ListTournamentsRequest struct {
	PaginationRequest

	GameType  *string `json:"game_type,omitempty" query:"game_type"`
	TableSize *string `json:"table_size,omitempty" query:"table_size"`
	State     *string `json:"state,omitempty" query:"state" validate:"omitempty,len=2"`
	DateFrom  *string `json:"date_from,omitempty" query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo    *string `json:"date_to,omitempty" query:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

// ListTournamentsResponse represents a page of tournament listings
type ListTournamentsResponse struct {
	Message     string          `json:"message"`
	Tournaments []TournamentDTO `json:"tournaments"`
	Total       int64           `json:"total"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
}

// GetTournamentResponse wraps a single tournament listing
type GetTournamentResponse struct {
	Tournament TournamentDTO `json:"tournament"`
}

// CancelTournamentRequest represents a creator cancelling their listing
type CancelTournamentRequest struct {
	PlayerID uint   `json:"-"`
	UUID     string `json:"-" validate:"required,uuid"`
}

// CancelTournamentResponse represents the response after cancellation
type CancelTournamentResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// TournamentDTO represents tournament data for API responses
type TournamentDTO struct {
	ID               uint      `json:"id"`
	UUID             string    `json:"uuid"`
	Name             string    `json:"name"`
	GameType         string    `json:"game_type"`
	TournamentFormat string    `json:"tournament_format"`
	TableSize        string    `json:"table_size"`
	Equipment        *string   `json:"equipment,omitempty"`
	EntryFee         *float64  `json:"entry_fee,omitempty"`
	MaxFargo         *int      `json:"max_fargo,omitempty"`
	ReportsToFargo   *bool     `json:"reports_to_fargo"`
	OpenTournament   *bool     `json:"open_tournament"`
	TournamentDate   string    `json:"tournament_date"`
	StartTime        *string   `json:"start_time,omitempty"`
	Description      *string   `json:"description,omitempty"`
	Status           string    `json:"status"`
	Venue            *VenueDTO `json:"venue,omitempty"`
	CreatedAt        string    `json:"created_at"`
}

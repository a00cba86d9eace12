// Package dto contains Data Transfer Objects for API request and response structures
package dto

// AdminLoginRequest represents the admin login form
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// AdminLoginResponse represents the successful admin login response
type AdminLoginResponse struct {
	Message      string    `json:"message"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	Admin        PlayerDTO `json:"admin"`
}

// ReviewTournamentRequest represents an admin approving or rejecting a listing
type ReviewTournamentRequest struct {
	AdminID uint    `json:"-"`
	UUID    string  `json:"-" validate:"required,uuid"`
	Reason  *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

// ReviewTournamentResponse represents the response after a moderation decision
type ReviewTournamentResponse struct {
	Message      string `json:"message"`
	Status       string `json:"status"`
	MatchesFound int    `json:"matches_found,omitempty"`
}

// ListPendingTournamentsRequest represents the moderation queue request
type ListPendingTournamentsRequest struct {
	PaginationRequest
	AdminID uint `json:"-"`
}

// ListPendingTournamentsResponse represents a page of the moderation queue
type ListPendingTournamentsResponse struct {
	Message     string          `json:"message"`
	Tournaments []TournamentDTO `json:"tournaments"`
	Total       int64           `json:"total"`
}

// ListPlayersRequest represents an admin listing player accounts
type ListPlayersRequest struct {
	PaginationRequest
	AdminID  uint  `json:"-"`
	IsActive *bool `json:"-"`
}

// ListPlayersResponse represents a page of player accounts
type ListPlayersResponse struct {
	Message string      `json:"message"`
	Players []PlayerDTO `json:"players"`
	Total   int64       `json:"total"`
}

// SetPlayerStatusRequest represents an admin activating or deactivating a player
type SetPlayerStatusRequest struct {
	AdminID    uint   `json:"-"`
	PlayerUUID string `json:"-" validate:"required,uuid"`
	IsActive   bool   `json:"is_active"`
}

// SetPlayerStatusResponse represents the response after a player status change
type SetPlayerStatusResponse struct {
	Message string `json:"message"`
}

// Package dto contains Data Transfer Objects for API request and response structures
package dto

// AddFavoriteRequest represents a player favoriting a tournament
type AddFavoriteRequest struct {
	PlayerID       uint   `json:"-"`
	TournamentUUID string `json:"-" validate:"required,uuid"`
}

// AddFavoriteResponse represents the response after adding a favorite
type AddFavoriteResponse struct {
	Message string `json:"message"`
}

// RemoveFavoriteRequest represents a player removing a favorite
type RemoveFavoriteRequest struct {
	PlayerID       uint   `json:"-"`
	TournamentUUID string `json:"-" validate:"required,uuid"`
}

// RemoveFavoriteResponse represents the response after removing a favorite
type RemoveFavoriteResponse struct {
	Message string `json:"message"`
}

// ListFavoritesRequest represents the request for a player's favorites
type ListFavoritesRequest struct {
	PaginationRequest
	PlayerID uint `json:"-"`
}

// ListFavoritesResponse represents a page of favorited tournaments
type ListFavoritesResponse struct {
	Message     string          `json:"message"`
	Tournaments []TournamentDTO `json:"tournaments"`
}

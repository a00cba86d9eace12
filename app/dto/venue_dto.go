// Package dto contains Data Transfer Objects for API request and response structures
package dto

// CreateVenueRequest represents the venue submission form
type CreateVenueRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=255"`
	City    string  `json:"city" validate:"required,max=100"`
	State   string  `json:"state" validate:"required,len=2,alpha"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// CreateVenueResponse represents the response after venue creation
type CreateVenueResponse struct {
	Message string   `json:"message"`
	Venue   VenueDTO `json:"venue"`
}

// ListVenuesRequest represents venue directory search parameters
type ListVenuesRequest struct {
	PaginationRequest
	State *string `json:"state,omitempty" query:"state" validate:"omitempty,len=2"`
}

// ListVenuesResponse represents a page of venues
type ListVenuesResponse struct {
	Message string     `json:"message"`
	Venues  []VenueDTO `json:"venues"`
	Total   int64      `json:"total"`
}

// VenueDTO represents venue data for API responses
type VenueDTO struct {
	ID      uint    `json:"id"`
	UUID    string  `json:"uuid"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Phone   *string `json:"phone,omitempty"`
}

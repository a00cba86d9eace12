// Package dto contains Data Transfer Objects for API request and response structures
package dto

// SignupRequest represents the signup form data
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	DisplayName     string `json:"display_name" validate:"required,min=2,max=60"`

	// Optional home location, used to prefill tournament searches
	HomeState *string `json:"home_state,omitempty" validate:"omitempty,len=2,alpha"`
	HomeCity  *string `json:"home_city,omitempty" validate:"omitempty,max=100"`

	FargoRating *int `json:"fargo_rating,omitempty" validate:"omitempty,min=100,max=900"`
}

// SignupResponse represents the response after successful signup
type SignupResponse struct {
	Message      string     `json:"message"`
	Token        string     `json:"token"`
	RefreshToken string     `json:"refresh_token"`
	Player       PlayerDTO  `json:"player"`
	Session      SessionDTO `json:"session"`
}

// LoginRequest represents the request payload for player login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	Message      string     `json:"message"`
	Token        string     `json:"token"`
	RefreshToken string     `json:"refresh_token"`
	Player       PlayerDTO  `json:"player"`
	Session      SessionDTO `json:"session"`
}

// RefreshTokenRequest represents the token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse represents the token refresh response
type RefreshTokenResponse struct {
	Message      string     `json:"message"`
	Token        string     `json:"token"`
	RefreshToken string     `json:"refresh_token"`
	Session      SessionDTO `json:"session"`
}

// LogoutRequest represents the logout request
type LogoutRequest struct {
	PlayerID    uint `json:"-"`
	AllSessions bool `json:"all_sessions"`
}

// LogoutResponse represents the logout response
type LogoutResponse struct {
	Message string `json:"message"`
}

// PlayerDTO represents player data for API responses
type PlayerDTO struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	HomeState   *string `json:"home_state,omitempty"`
	HomeCity    *string `json:"home_city,omitempty"`
	FargoRating *int    `json:"fargo_rating,omitempty"`
	IsActive    *bool   `json:"is_active"`
	IsAdmin     *bool   `json:"is_admin"`
	CreatedAt   string  `json:"created_at"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

// SessionDTO represents session data for authentication responses
type SessionDTO struct {
	SessionToken string  `json:"session_token"`
	RefreshToken *string `json:"refresh_token,omitempty"`
	ExpiresIn    int     `json:"expires_in"`
	TokenType    string  `json:"token_type"`
	CreatedAt    string  `json:"created_at"`
}

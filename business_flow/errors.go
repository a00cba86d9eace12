// Package businessflow contains the core business logic and use cases for tournament directory workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Player-related errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNotAdmin           = errors.New("player is not an admin")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")

	// Tournament-related errors
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrTournamentAccessDenied  = errors.New("tournament access denied")
	ErrTournamentNotEditable   = errors.New("tournament cannot be edited in current status")
	ErrInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrTournamentDateInPast    = errors.New("tournament date cannot be in the past")
	ErrVenueNotFound           = errors.New("venue not found")

	// Search alert errors
	ErrAlertNotFound     = errors.New("search alert not found")
	ErrAlertAccessDenied = errors.New("search alert access denied")
	ErrTooManyAlerts     = errors.New("alert limit reached for this account")
	ErrInvalidFeeRange   = errors.New("minimum entry fee cannot exceed maximum entry fee")
	ErrInvalidDateRange  = errors.New("start date cannot be after end date")
	ErrInvalidDayOfWeek  = errors.New("day of week must be between 0 and 6")

	// Favorite errors
	ErrFavoriteNotFound      = errors.New("favorite not found")
	ErrFavoriteAlreadyExists = errors.New("tournament already favorited")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")

	// Cache errors
	ErrCacheNotAvailable = errors.New("cache not available")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsPlayerNotFound(err error) bool {
	return errors.Is(err, ErrPlayerNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsNotAdmin(err error) bool {
	return errors.Is(err, ErrNotAdmin)
}

func IsTooManyAttempts(err error) bool {
	return errors.Is(err, ErrTooManyAttempts)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

func IsTournamentNotFound(err error) bool {
	return errors.Is(err, ErrTournamentNotFound)
}

func IsTournamentAccessDenied(err error) bool {
	return errors.Is(err, ErrTournamentAccessDenied)
}

func IsTournamentNotEditable(err error) bool {
	return errors.Is(err, ErrTournamentNotEditable)
}

func IsInvalidStatusTransition(err error) bool {
	return errors.Is(err, ErrInvalidStatusTransition)
}

func IsTournamentDateInPast(err error) bool {
	return errors.Is(err, ErrTournamentDateInPast)
}

func IsVenueNotFound(err error) bool {
	return errors.Is(err, ErrVenueNotFound)
}

func IsAlertNotFound(err error) bool {
	return errors.Is(err, ErrAlertNotFound)
}

func IsAlertAccessDenied(err error) bool {
	return errors.Is(err, ErrAlertAccessDenied)
}

func IsTooManyAlerts(err error) bool {
	return errors.Is(err, ErrTooManyAlerts)
}

func IsInvalidFeeRange(err error) bool {
	return errors.Is(err, ErrInvalidFeeRange)
}

func IsInvalidDateRange(err error) bool {
	return errors.Is(err, ErrInvalidDateRange)
}

func IsInvalidDayOfWeek(err error) bool {
	return errors.Is(err, ErrInvalidDayOfWeek)
}

func IsFavoriteNotFound(err error) bool {
	return errors.Is(err, ErrFavoriteNotFound)
}

func IsFavoriteAlreadyExists(err error) bool {
	return errors.Is(err, ErrFavoriteAlreadyExists)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsCacheNotAvailable(err error) bool {
	return errors.Is(err, ErrCacheNotAvailable)
}

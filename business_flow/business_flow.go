// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	DeviceInfo map[string]string `json:"device_info,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		DeviceInfo: make(map[string]string),
		Additional: make(map[string]string),
	}
}

// AddDeviceInfo adds device information to the metadata
func (cm *ClientMetadata) AddDeviceInfo(key, value string) {
	if cm.DeviceInfo == nil {
		cm.DeviceInfo = make(map[string]string)
	}
	cm.DeviceInfo[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// SetSessionID sets the session ID
func (cm *ClientMetadata) SetSessionID(sessionID string) {
	cm.SessionID = sessionID
}

// ToPlayerDTO converts a player model to PlayerDTO for API responses
func ToPlayerDTO(player models.Player) dto.PlayerDTO {
	d := dto.PlayerDTO{
		ID:          player.ID,
		UUID:        player.UUID.String(),
		Email:       player.Email,
		DisplayName: player.DisplayName,
		HomeState:   player.HomeState,
		HomeCity:    player.HomeCity,
		FargoRating: player.FargoRating,
		IsActive:    player.IsActive,
		IsAdmin:     player.IsAdmin,
		CreatedAt:   player.CreatedAt.Format(time.RFC3339),
	}

	if player.LastLoginAt != nil {
		d.LastLoginAt = utils.ToPtr(player.LastLoginAt.Format(time.RFC3339))
	}

	return d
}

// ToSessionDTO converts a session model to SessionDTO for authentication responses
func ToSessionDTO(session models.PlayerSession) dto.SessionDTO {
	return dto.SessionDTO{
		SessionToken: session.SessionToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    int(session.ExpiresAt.Sub(utils.UTCNow()).Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
	}
}

// ToVenueDTO converts a venue model to VenueDTO for API responses
func ToVenueDTO(venue models.Venue) dto.VenueDTO {
	return dto.VenueDTO{
		ID:      venue.ID,
		UUID:    venue.UUID.String(),
		Name:    venue.Name,
		Address: venue.Address,
		City:    venue.City,
		State:   venue.State,
		Phone:   venue.Phone,
	}
}

// ToTournamentDTO converts a tournament model to TournamentDTO for API responses
func ToTournamentDTO(t models.Tournament) dto.TournamentDTO {
	d := dto.TournamentDTO{
		ID:               t.ID,
		UUID:             t.UUID.String(),
		Name:             t.Name,
		GameType:         t.GameType,
		TournamentFormat: t.TournamentFormat,
		TableSize:        t.TableSize,
		Equipment:        t.Equipment,
		EntryFee:         t.EntryFee,
		MaxFargo:         t.MaxFargo,
		ReportsToFargo:   t.ReportsToFargo,
		OpenTournament:   t.OpenTournament,
		TournamentDate:   t.TournamentDate.Format(time.DateOnly),
		StartTime:        t.StartTime,
		Description:      t.Description,
		Status:           t.Status.String(),
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}

	if t.Venue != nil {
		venue := ToVenueDTO(*t.Venue)
		d.Venue = &venue
	}

	return d
}

// ToSearchAlertDTO converts a search alert model to SearchAlertDTO for API responses
func ToSearchAlertDTO(alert models.SearchAlert) dto.SearchAlertDTO {
	d := dto.SearchAlertDTO{
		ID:          alert.ID,
		UUID:        alert.UUID.String(),
		Name:        alert.Name,
		Description: alert.Description,
		Criteria:    ToFilterCriteriaDTO(alert.Criteria),
		IsActive:    alert.IsActive,
		MatchCount:  alert.MatchCount,
		CreatedAt:   alert.CreatedAt.Format(time.RFC3339),
	}

	if alert.LastMatchDate != nil {
		d.LastMatchDate = utils.ToPtr(alert.LastMatchDate.Format(time.RFC3339))
	}

	return d
}

// ToFilterCriteriaDTO converts stored filter criteria to its DTO form
func ToFilterCriteriaDTO(c models.FilterCriteria) dto.FilterCriteriaDTO {
	return dto.FilterCriteriaDTO{
		GameType:         c.GameType,
		TournamentFormat: c.TournamentFormat,
		TableSize:        c.TableSize,
		Equipment:        c.Equipment,
		EntryFeeMin:      c.EntryFeeMin,
		EntryFeeMax:      c.EntryFeeMax,
		FargoMax:         c.FargoMax,
		ReportsToFargo:   c.ReportsToFargo,
		OpenTournament:   c.OpenTournament,
		State:            c.State,
		City:             c.City,
		DateFrom:         c.DateFrom,
		DateTo:           c.DateTo,
		DaysOfWeek:       c.DaysOfWeek,
	}
}

// ToFilterCriteriaModel converts a criteria DTO to its stored form
func ToFilterCriteriaModel(c dto.FilterCriteriaDTO) models.FilterCriteria {
	return models.FilterCriteria{
		GameType:         c.GameType,
		TournamentFormat: c.TournamentFormat,
		TableSize:        c.TableSize,
		Equipment:        c.Equipment,
		EntryFeeMin:      c.EntryFeeMin,
		EntryFeeMax:      c.EntryFeeMax,
		FargoMax:         c.FargoMax,
		ReportsToFargo:   c.ReportsToFargo,
		OpenTournament:   c.OpenTournament,
		State:            c.State,
		City:             c.City,
		DateFrom:         c.DateFrom,
		DateTo:           c.DateTo,
		DaysOfWeek:       c.DaysOfWeek,
	}
}

// Package businessflow contains the core business logic and use cases for tournament directory workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tannermartz/breakline/config"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	"github.com/tannermartz/breakline/utils"
)

// createSession persists a new active session for the player
func createSession(ctx context.Context, sessionRepo repository.PlayerSessionRepository, playerID uint, accessToken, refreshToken string, metadata *ClientMetadata) (*models.PlayerSession, error) {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	session := &models.PlayerSession{
		PlayerID:       playerID,
		SessionToken:   accessToken,
		RefreshToken:   &refreshToken,
		IPAddress:      &ipAddress,
		UserAgent:      &userAgent,
		IsActive:       utils.ToPtr(true),
		CreatedAt:      utils.UTCNow(),
		LastAccessedAt: utils.UTCNow(),
		ExpiresAt:      utils.UTCNow().Add(utils.AccessTokenTTL),
	}

	if err := sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// createAuditLog records one audit entry; failures are the caller's to ignore
func createAuditLog(ctx context.Context, auditRepo repository.AuditLogRepository, player *models.Player, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	var playerID *uint
	if player != nil {
		playerID = &player.ID
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		PlayerID:     playerID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	// Extract request ID from context if available
	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		if requestIDStr, ok := requestID.(string); ok {
			audit.RequestID = &requestIDStr
		}
	}

	return auditRepo.Save(ctx, audit)
}

// getPlayer loads an active player or returns a domain error
func getPlayer(ctx context.Context, playerRepo repository.PlayerRepository, playerID uint) (*models.Player, error) {
	player, err := playerRepo.ByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	if !utils.IsTrue(player.IsActive) {
		return nil, ErrAccountInactive
	}
	return player, nil
}

// getTournamentByUUID loads a tournament or returns a domain error
func getTournamentByUUID(ctx context.Context, tournamentRepo repository.TournamentRepository, tournamentUUID string) (*models.Tournament, error) {
	if _, err := uuid.Parse(tournamentUUID); err != nil {
		return nil, ErrTournamentNotFound
	}

	tournament, err := tournamentRepo.ByUUID(ctx, tournamentUUID)
	if err != nil {
		return nil, err
	}
	if tournament == nil {
		return nil, ErrTournamentNotFound
	}
	return tournament, nil
}

// getAlertByUUID loads a search alert owned by the player or returns a domain error
func getAlertByUUID(ctx context.Context, alertRepo repository.SearchAlertRepository, alertUUID string, playerID uint) (*models.SearchAlert, error) {
	if _, err := uuid.Parse(alertUUID); err != nil {
		return nil, ErrAlertNotFound
	}

	alert, err := alertRepo.ByUUID(ctx, alertUUID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, ErrAlertNotFound
	}
	if alert.PlayerID != playerID {
		return nil, ErrAlertAccessDenied
	}
	return alert, nil
}

// redisKey builds a namespaced cache key from the configured prefix
func redisKey(cfg config.CacheConfig, key string) string {
	if cfg.RedisPrefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", cfg.RedisPrefix, key)
}

// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/redis/go-redis/v9"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/services"
	"github.com/tannermartz/breakline/config"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// LoginFlow handles the complete login business logic
type LoginFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest, metadata *ClientMetadata) (*dto.LogoutResponse, error)
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	playerRepo   repository.PlayerRepository
	sessionRepo  repository.PlayerSessionRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
	cacheConfig  *config.CacheConfig
	rc           *redis.Client
	db           *gorm.DB
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(
	playerRepo repository.PlayerRepository,
	sessionRepo repository.PlayerSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
	db *gorm.DB,
) LoginFlow {
	return &LoginFlowImpl{
		playerRepo:   playerRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
		cacheConfig:  cacheConfig,
		rc:           rc,
		db:           db,
	}
}

// Login authenticates a player by email and password and opens a session
func (s *LoginFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	if err := s.checkLoginThrottle(ctx, req.Email); err != nil {
		return nil, NewBusinessError("LOGIN_THROTTLED", "Login throttled", err)
	}

	player, err := s.playerRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("LOGIN_LOOKUP_FAILED", "Failed to lookup player", err)
	}
	if player == nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrPlayerNotFound)
	}

	if !utils.IsTrue(player.IsActive) {
		errMsg := "Login attempt on inactive account"
		_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedAttempt(ctx, req.Email)
		errMsg := "Incorrect password"
		_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrIncorrectPassword)
	}

	var session *models.PlayerSession
	var tokens struct {
		access  string
		refresh string
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		tokens.access, tokens.refresh, err = s.tokenService.GenerateTokens(player.ID)
		if err != nil {
			return err
		}

		session, err = createSession(txCtx, s.sessionRepo, player.ID, tokens.access, tokens.refresh, metadata)
		if err != nil {
			return err
		}

		return s.playerRepo.UpdateLastLogin(txCtx, player.ID, utils.UTCNow())
	})

	if err != nil {
		errMsg := fmt.Sprintf("Login failed: %s", err.Error())
		_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	msg := fmt.Sprintf("Login successful: %d", player.ID)
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionLoginSuccessful, msg, true, nil, metadata)

	return &dto.LoginResponse{
		Message:      "Login successful",
		Token:        tokens.access,
		RefreshToken: tokens.refresh,
		Player:       ToPlayerDTO(*player),
		Session:      ToSessionDTO(*session),
	}, nil
}

// RefreshToken rotates an access and refresh token pair
func (s *LoginFlowImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.RefreshTokenResponse, error) {
	oldSession, err := s.sessionRepo.ByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("REFRESH_LOOKUP_FAILED", "Failed to lookup session", err)
	}
	if oldSession == nil {
		return nil, NewBusinessError("REFRESH_FAILED", "Token refresh failed", ErrSessionNotFound)
	}
	if !oldSession.IsValid() {
		return nil, NewBusinessError("REFRESH_FAILED", "Token refresh failed", ErrSessionExpired)
	}

	player, err := getPlayer(ctx, s.playerRepo, oldSession.PlayerID)
	if err != nil {
		return nil, NewBusinessError("REFRESH_FAILED", "Token refresh failed", err)
	}

	var session *models.PlayerSession
	var tokens struct {
		access  string
		refresh string
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		tokens.access, tokens.refresh, err = s.tokenService.RefreshToken(req.RefreshToken)
		if err != nil {
			return err
		}

		if err := s.sessionRepo.ExpireSession(txCtx, oldSession.ID); err != nil {
			return err
		}

		session, err = createSession(txCtx, s.sessionRepo, player.ID, tokens.access, tokens.refresh, metadata)
		return err
	})

	if err != nil {
		return nil, NewBusinessError("REFRESH_FAILED", "Token refresh failed", err)
	}

	return &dto.RefreshTokenResponse{
		Message:      "Token refreshed successfully",
		Token:        tokens.access,
		RefreshToken: tokens.refresh,
		Session:      ToSessionDTO(*session),
	}, nil
}

// Logout closes the player's sessions
func (s *LoginFlowImpl) Logout(ctx context.Context, req *dto.LogoutRequest, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if req.AllSessions {
			return s.sessionRepo.ExpireAllPlayerSessions(txCtx, player.ID)
		}

		sessionID := ""
		if metadata != nil {
			sessionID = metadata.SessionID
		}
		if sessionID == "" {
			return s.sessionRepo.ExpireAllPlayerSessions(txCtx, player.ID)
		}

		session, err := s.sessionRepo.BySessionToken(txCtx, sessionID)
		if err != nil {
			return err
		}
		if session == nil || session.PlayerID != player.ID {
			return ErrSessionNotFound
		}

		return s.sessionRepo.ExpireSession(txCtx, session.ID)
	})

	if err != nil {
		errMsg := fmt.Sprintf("Logout failed: %s", err.Error())
		_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionLogout, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	}

	msg := fmt.Sprintf("Logout successful: %d", player.ID)
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionLogout, msg, true, nil, metadata)

	return &dto.LogoutResponse{Message: "Logout successful"}, nil
}

// checkLoginThrottle rejects logins once the failure counter passes the cap.
// Without redis the throttle is disabled rather than blocking logins.
func (s *LoginFlowImpl) checkLoginThrottle(ctx context.Context, email string) error {
	if s.rc == nil || s.cacheConfig == nil || !s.cacheConfig.Enabled {
		return nil
	}

	key := redisKey(*s.cacheConfig, fmt.Sprintf("%s:%s", utils.LoginAttemptsKeyPrefix, email))
	count, err := s.rc.Get(ctx, key).Int()
	if err != nil {
		return nil
	}
	if count >= utils.MaxLoginAttempts {
		return ErrTooManyAttempts
	}
	return nil
}

// recordFailedAttempt bumps the failure counter and refreshes its window
func (s *LoginFlowImpl) recordFailedAttempt(ctx context.Context, email string) {
	if s.rc == nil || s.cacheConfig == nil || !s.cacheConfig.Enabled {
		return
	}

	key := redisKey(*s.cacheConfig, fmt.Sprintf("%s:%s", utils.LoginAttemptsKeyPrefix, email))
	if err := s.rc.Incr(ctx, key).Err(); err != nil {
		return
	}
	_ = s.rc.Expire(ctx, key, utils.LoginAttemptWindow).Err()
}

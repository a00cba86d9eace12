// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/services"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// SignupFlow handles the complete signup business logic
type SignupFlow interface {
	Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
}

// SignupFlowImpl implements the signup business flow
type SignupFlowImpl struct {
	playerRepo   repository.PlayerRepository
	sessionRepo  repository.PlayerSessionRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
	db           *gorm.DB
}

// NewSignupFlow creates a new signup flow instance
func NewSignupFlow(
	playerRepo repository.PlayerRepository,
	sessionRepo repository.PlayerSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	db *gorm.DB,
) SignupFlow {
	return &SignupFlowImpl{
		playerRepo:   playerRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
		db:           db,
	}
}

// Signup registers a new player account and opens an authenticated session
func (s *SignupFlowImpl) Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	if err := s.validateSignupRequest(ctx, req); err != nil {
		return nil, NewBusinessError("SIGNUP_VALIDATION_FAILED", "Signup validation failed", err)
	}

	var player *models.Player
	var session *models.PlayerSession
	var tokens struct {
		access  string
		refresh string
	}

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		player, err = s.createPlayer(txCtx, req)
		if err != nil {
			return err
		}

		tokens.access, tokens.refresh, err = s.tokenService.GenerateTokens(player.ID)
		if err != nil {
			return err
		}

		session, err = createSession(txCtx, s.sessionRepo, player.ID, tokens.access, tokens.refresh, metadata)
		return err
	})

	if err != nil {
		errMsg := fmt.Sprintf("Signup failed: %s", err.Error())
		_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionSignupCompleted, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	msg := fmt.Sprintf("Signup completed successfully: %d", player.ID)
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionSignupCompleted, msg, true, nil, metadata)

	return &dto.SignupResponse{
		Message:      "Signup completed successfully",
		Token:        tokens.access,
		RefreshToken: tokens.refresh,
		Player:       ToPlayerDTO(*player),
		Session:      ToSessionDTO(*session),
	}, nil
}

// Private helper methods

func (s *SignupFlowImpl) validateSignupRequest(ctx context.Context, req *dto.SignupRequest) error {
	existingPlayer, err := s.playerRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existingPlayer != nil {
		return ErrEmailAlreadyExists
	}

	return nil
}

func (s *SignupFlowImpl) createPlayer(ctx context.Context, req *dto.SignupRequest) (*models.Player, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		UUID:         uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		DisplayName:  req.DisplayName,
		HomeState:    req.HomeState,
		HomeCity:     req.HomeCity,
		FargoRating:  req.FargoRating,
		IsActive:     utils.ToPtr(true),
		IsAdmin:      utils.ToPtr(false),
	}

	if err := s.playerRepo.Save(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

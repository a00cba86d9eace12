// Package businessflow contains the core business logic and use cases for admin workflows
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

// AdminFlow handles moderation and account management
type AdminFlow interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error)
	ListPendingTournaments(ctx context.Context, req *dto.ListPendingTournamentsRequest, metadata *ClientMetadata) (*dto.ListPendingTournamentsResponse, error)
	ApproveTournament(ctx context.Context, req *dto.ReviewTournamentRequest, metadata *ClientMetadata) (*dto.ReviewTournamentResponse, error)
	RejectTournament(ctx context.Context, req *dto.ReviewTournamentRequest, metadata *ClientMetadata) (*dto.ReviewTournamentResponse, error)
	ListPlayers(ctx context.Context, req *dto.ListPlayersRequest, metadata *ClientMetadata) (*dto.ListPlayersResponse, error)
	SetPlayerStatus(ctx context.Context, req *dto.SetPlayerStatusRequest, metadata *ClientMetadata) (*dto.SetPlayerStatusResponse, error)
}

// AdminFlowImpl implements the admin business flow
type AdminFlowImpl struct {
	playerRepo     repository.PlayerRepository
	tournamentRepo repository.TournamentRepository
	venueRepo      repository.VenueRepository
	sessionRepo    repository.PlayerSessionRepository
	auditRepo      repository.AuditLogRepository
	tokenService   services.TokenService
	matchingFlow   AlertMatchingFlow
	db             *gorm.DB
}

// NewAdminFlow creates a new admin flow instance
func NewAdminFlow(
	playerRepo repository.PlayerRepository,
	tournamentRepo repository.TournamentRepository,
	venueRepo repository.VenueRepository,
	sessionRepo repository.PlayerSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	matchingFlow AlertMatchingFlow,
	db *gorm.DB,
) AdminFlow {
	return &AdminFlowImpl{
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		venueRepo:      venueRepo,
		sessionRepo:    sessionRepo,
		auditRepo:      auditRepo,
		tokenService:   tokenService,
		matchingFlow:   matchingFlow,
		db:             db,
	}
}

// Login authenticates an admin account
func (s *AdminFlowImpl) Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error) {
	admin, err := s.playerRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOGIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_LOGIN_FAILED", "Login failed", ErrPlayerNotFound)
	}
	if !utils.IsTrue(admin.IsAdmin) {
		return nil, NewBusinessError("ADMIN_LOGIN_FAILED", "Login failed", ErrNotAdmin)
	}
	if !utils.IsTrue(admin.IsActive) {
		return nil, NewBusinessError("ADMIN_LOGIN_FAILED", "Login failed", ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		errMsg := "Incorrect admin password"
		_ = createAuditLog(ctx, s.auditRepo, admin, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("ADMIN_LOGIN_FAILED", "Login failed", ErrIncorrectPassword)
	}

	accessToken, refreshToken, err := s.tokenService.GenerateAdminTokens(admin.ID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOGIN_FAILED", "Login failed", err)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		_, err := createSession(txCtx, s.sessionRepo, admin.ID, accessToken, refreshToken, metadata)
		if err != nil {
			return err
		}
		return s.playerRepo.UpdateLastLogin(txCtx, admin.ID, utils.UTCNow())
	})
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOGIN_FAILED", "Login failed", err)
	}

	msg := fmt.Sprintf("Admin login successful: %d", admin.ID)
	_ = createAuditLog(ctx, s.auditRepo, admin, models.AuditActionLoginSuccessful, msg, true, nil, metadata)

	return &dto.AdminLoginResponse{
		Message:      "Login successful",
		Token:        accessToken,
		RefreshToken: refreshToken,
		Admin:        ToPlayerDTO(*admin),
	}, nil
}

// ListPendingTournaments returns the moderation queue, oldest first
func (s *AdminFlowImpl) ListPendingTournaments(ctx context.Context, req *dto.ListPendingTournamentsRequest, metadata *ClientMetadata) (*dto.ListPendingTournamentsResponse, error) {
	if _, err := s.requireAdmin(ctx, req.AdminID); err != nil {
		return nil, NewBusinessError("ADMIN_CHECK_FAILED", "Admin check failed", err)
	}

	tournaments, err := s.tournamentRepo.ListByStatus(ctx, models.TournamentStatusPending, req.Limit(), req.Offset())
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LIST_FAILED", "Failed to list tournaments", err)
	}

	total, err := s.tournamentRepo.Count(ctx, models.TournamentFilter{
		Status: utils.ToPtr(models.TournamentStatusPending),
	})
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_COUNT_FAILED", "Failed to count tournaments", err)
	}

	dtos := make([]dto.TournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		dtos = append(dtos, ToTournamentDTO(*t))
	}

	return &dto.ListPendingTournamentsResponse{
		Message:     "Pending tournaments retrieved successfully",
		Tournaments: dtos,
		Total:       total,
	}, nil
}

// ApproveTournament publishes a pending listing and kicks off alert matching
func (s *AdminFlowImpl) ApproveTournament(ctx context.Context, req *dto.ReviewTournamentRequest, metadata *ClientMetadata) (*dto.ReviewTournamentResponse, error) {
	admin, err := s.requireAdmin(ctx, req.AdminID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_CHECK_FAILED", "Admin check failed", err)
	}

	tournament, err := s.review(ctx, admin, req, models.TournamentStatusApproved, models.AuditActionTournamentApproved, metadata)
	if err != nil {
		return nil, err
	}

	// Matching runs once the listing goes live
	if tournament.VenueID != nil {
		if venue, err := s.venueRepo.ByID(ctx, *tournament.VenueID); err == nil {
			tournament.Venue = venue
		}
	}
	DispatchMatching(s.matchingFlow, tournament)

	return &dto.ReviewTournamentResponse{
		Message: "Tournament approved",
		Status:  models.TournamentStatusApproved.String(),
	}, nil
}

// RejectTournament declines a pending listing
func (s *AdminFlowImpl) RejectTournament(ctx context.Context, req *dto.ReviewTournamentRequest, metadata *ClientMetadata) (*dto.ReviewTournamentResponse, error) {
	admin, err := s.requireAdmin(ctx, req.AdminID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_CHECK_FAILED", "Admin check failed", err)
	}

	if _, err := s.review(ctx, admin, req, models.TournamentStatusRejected, models.AuditActionTournamentRejected, metadata); err != nil {
		return nil, err
	}

	return &dto.ReviewTournamentResponse{
		Message: "Tournament rejected",
		Status:  models.TournamentStatusRejected.String(),
	}, nil
}

// ListPlayers returns player accounts, newest first, optionally filtered by
// active status
func (s *AdminFlowImpl) ListPlayers(ctx context.Context, req *dto.ListPlayersRequest, metadata *ClientMetadata) (*dto.ListPlayersResponse, error) {
	if _, err := s.requireAdmin(ctx, req.AdminID); err != nil {
		return nil, NewBusinessError("ADMIN_CHECK_FAILED", "Admin check failed", err)
	}

	filter := models.PlayerFilter{IsActive: req.IsActive}

	players, err := s.playerRepo.ByFilter(ctx, filter, "created_at DESC", req.Limit(), req.Offset())
	if err != nil {
		return nil, NewBusinessError("PLAYER_LIST_FAILED", "Failed to list players", err)
	}

	total, err := s.playerRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("PLAYER_COUNT_FAILED", "Failed to count players", err)
	}

	dtos := make([]dto.PlayerDTO, 0, len(players))
	for _, p := range players {
		dtos = append(dtos, ToPlayerDTO(*p))
	}

	return &dto.ListPlayersResponse{
		Message: "Players retrieved successfully",
		Players: dtos,
		Total:   total,
	}, nil
}

// SetPlayerStatus activates or deactivates a player account
func (s *AdminFlowImpl) SetPlayerStatus(ctx context.Context, req *dto.SetPlayerStatusRequest, metadata *ClientMetadata) (*dto.SetPlayerStatusResponse, error) {
	admin, err := s.requireAdmin(ctx, req.AdminID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_CHECK_FAILED", "Admin check failed", err)
	}

	if _, err := uuid.Parse(req.PlayerUUID); err != nil {
		return nil, NewBusinessError("PLAYER_NOT_FOUND", "Player not found", ErrPlayerNotFound)
	}

	player, err := s.playerRepo.ByUUID(ctx, req.PlayerUUID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}
	if player == nil {
		return nil, NewBusinessError("PLAYER_NOT_FOUND", "Player not found", ErrPlayerNotFound)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.playerRepo.UpdateActiveStatus(txCtx, player.ID, req.IsActive); err != nil {
			return err
		}

		// A deactivated account loses its live sessions immediately
		if !req.IsActive {
			return s.sessionRepo.ExpireAllPlayerSessions(txCtx, player.ID)
		}
		return nil
	})
	if err != nil {
		return nil, NewBusinessError("PLAYER_STATUS_UPDATE_FAILED", "Failed to update player status", err)
	}

	action := models.AuditActionAccountActivated
	message := "Player account activated"
	if !req.IsActive {
		action = models.AuditActionAccountDeactivated
		message = "Player account deactivated"
	}

	msg := fmt.Sprintf("%s: %s by admin %d", message, player.UUID.String(), admin.ID)
	_ = createAuditLog(ctx, s.auditRepo, player, action, msg, true, nil, metadata)

	return &dto.SetPlayerStatusResponse{Message: message}, nil
}

// Private helper methods

func (s *AdminFlowImpl) requireAdmin(ctx context.Context, adminID uint) (*models.Player, error) {
	admin, err := getPlayer(ctx, s.playerRepo, adminID)
	if err != nil {
		return nil, err
	}
	if !utils.IsTrue(admin.IsAdmin) {
		return nil, ErrNotAdmin
	}
	return admin, nil
}

func (s *AdminFlowImpl) review(ctx context.Context, admin *models.Player, req *dto.ReviewTournamentRequest, status models.TournamentStatus, auditAction string, metadata *ClientMetadata) (*models.Tournament, error) {
	tournament, err := getTournamentByUUID(ctx, s.tournamentRepo, req.UUID)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LOOKUP_FAILED", "Failed to lookup tournament", err)
	}

	if !tournament.CanTransitionTo(status) {
		return nil, NewBusinessError("INVALID_STATUS_TRANSITION", "Invalid status transition", ErrInvalidStatusTransition)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.tournamentRepo.UpdateStatus(txCtx, tournament.ID, status)
	})
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_REVIEW_FAILED", "Tournament review failed", err)
	}
	tournament.Status = status

	reason := ""
	if req.Reason != nil {
		reason = ": " + *req.Reason
	}
	msg := fmt.Sprintf("Tournament %s by admin %d%s", status, admin.ID, reason)
	_ = createAuditLog(ctx, s.auditRepo, admin, auditAction, msg, true, nil, metadata)

	return tournament, nil
}

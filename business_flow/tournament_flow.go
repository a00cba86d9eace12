// Package businessflow contains the core business logic and use cases for tournament workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/logx"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// TournamentFlow handles the tournament directory business logic
type TournamentFlow interface {
	CreateTournament(ctx context.Context, req *dto.CreateTournamentRequest, metadata *ClientMetadata) (*dto.CreateTournamentResponse, error)
	UpdateTournament(ctx context.Context, req *dto.UpdateTournamentRequest, metadata *ClientMetadata) (*dto.UpdateTournamentResponse, error)
	GetTournament(ctx context.Context, tournamentUUID string) (*dto.GetTournamentResponse, error)
	ListTournaments(ctx context.Context, req *dto.ListTournamentsRequest) (*dto.ListTournamentsResponse, error)
	CancelTournament(ctx context.Context, req *dto.CancelTournamentRequest, metadata *ClientMetadata) (*dto.CancelTournamentResponse, error)
}

// TournamentFlowImpl implements the tournament business flow
type TournamentFlowImpl struct {
	tournamentRepo repository.TournamentRepository
	venueRepo      repository.VenueRepository
	playerRepo     repository.PlayerRepository
	auditRepo      repository.AuditLogRepository
	matchingFlow   AlertMatchingFlow
	db             *gorm.DB
}

// NewTournamentFlow creates a new tournament flow instance
func NewTournamentFlow(
	tournamentRepo repository.TournamentRepository,
	venueRepo repository.VenueRepository,
	playerRepo repository.PlayerRepository,
	auditRepo repository.AuditLogRepository,
	matchingFlow AlertMatchingFlow,
	db *gorm.DB,
) TournamentFlow {
	return &TournamentFlowImpl{
		tournamentRepo: tournamentRepo,
		venueRepo:      venueRepo,
		playerRepo:     playerRepo,
		auditRepo:      auditRepo,
		matchingFlow:   matchingFlow,
		db:             db,
	}
}

// CreateTournament submits a new listing into the moderation queue
func (s *TournamentFlowImpl) CreateTournament(ctx context.Context, req *dto.CreateTournamentRequest, metadata *ClientMetadata) (*dto.CreateTournamentResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	tournamentDate, err := time.Parse(time.DateOnly, req.TournamentDate)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_VALIDATION_FAILED", "Tournament validation failed", err)
	}
	if tournamentDate.Before(utils.UTCNow().Truncate(24 * time.Hour)) {
		return nil, NewBusinessError("TOURNAMENT_VALIDATION_FAILED", "Tournament validation failed", ErrTournamentDateInPast)
	}

	var venueID *uint
	if req.VenueUUID != nil {
		venue, err := s.venueRepo.ByUUID(ctx, *req.VenueUUID)
		if err != nil {
			return nil, NewBusinessError("VENUE_LOOKUP_FAILED", "Failed to lookup venue", err)
		}
		if venue == nil {
			return nil, NewBusinessError("VENUE_NOT_FOUND", "Venue not found", ErrVenueNotFound)
		}
		venueID = &venue.ID
	}

	tournament := &models.Tournament{
		Name:             req.Name,
		GameType:         req.GameType,
		TournamentFormat: req.TournamentFormat,
		TableSize:        req.TableSize,
		Equipment:        req.Equipment,
		EntryFee:         req.EntryFee,
		MaxFargo:         req.MaxFargo,
		ReportsToFargo:   req.ReportsToFargo,
		OpenTournament:   req.OpenTournament,
		TournamentDate:   tournamentDate,
		StartTime:        req.StartTime,
		Description:      req.Description,
		VenueID:          venueID,
		Status:           models.TournamentStatusPending,
		CreatedBy:        player.ID,
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.tournamentRepo.Save(txCtx, tournament)
	})

	if err != nil {
		errMsg := fmt.Sprintf("Tournament creation failed: %s", err.Error())
		_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionTournamentCreateFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("TOURNAMENT_CREATION_FAILED", "Tournament creation failed", err)
	}

	msg := fmt.Sprintf("Tournament created successfully: %s", tournament.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionTournamentCreated, msg, true, nil, metadata)

	// Pending listings are not matched; the approval path dispatches matching

	tournament.Venue = s.loadVenue(ctx, venueID)

	return &dto.CreateTournamentResponse{
		Message:    "Tournament submitted for review",
		Tournament: ToTournamentDTO(*tournament),
	}, nil
}

// UpdateTournament edits a listing; nil request fields keep their value
func (s *TournamentFlowImpl) UpdateTournament(ctx context.Context, req *dto.UpdateTournamentRequest, metadata *ClientMetadata) (*dto.UpdateTournamentResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	tournament, err := getTournamentByUUID(ctx, s.tournamentRepo, req.UUID)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LOOKUP_FAILED", "Failed to lookup tournament", err)
	}

	if tournament.CreatedBy != player.ID {
		return nil, NewBusinessError("TOURNAMENT_ACCESS_DENIED", "Tournament access denied", ErrTournamentAccessDenied)
	}
	if !tournament.IsEditable() {
		return nil, NewBusinessError("TOURNAMENT_NOT_EDITABLE", "Tournament cannot be edited", ErrTournamentNotEditable)
	}

	if err := s.applyUpdate(ctx, tournament, req); err != nil {
		return nil, NewBusinessError("TOURNAMENT_VALIDATION_FAILED", "Tournament validation failed", err)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.tournamentRepo.Update(txCtx, *tournament)
	})

	if err != nil {
		errMsg := fmt.Sprintf("Tournament update failed: %s", err.Error())
		_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionTournamentUpdateFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("TOURNAMENT_UPDATE_FAILED", "Tournament update failed", err)
	}

	msg := fmt.Sprintf("Tournament updated successfully: %s", tournament.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionTournamentUpdated, msg, true, nil, metadata)

	tournament.Venue = s.loadVenue(ctx, tournament.VenueID)

	// Edits to live listings can bring the event into scope of more alerts
	if tournament.Status == models.TournamentStatusApproved {
		DispatchMatching(s.matchingFlow, tournament)
	}

	return &dto.UpdateTournamentResponse{
		Message:    "Tournament updated successfully",
		Tournament: ToTournamentDTO(*tournament),
	}, nil
}

// GetTournament returns a single listing by UUID
func (s *TournamentFlowImpl) GetTournament(ctx context.Context, tournamentUUID string) (*dto.GetTournamentResponse, error) {
	tournament, err := getTournamentByUUID(ctx, s.tournamentRepo, tournamentUUID)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LOOKUP_FAILED", "Failed to lookup tournament", err)
	}

	tournament.Venue = s.loadVenue(ctx, tournament.VenueID)

	return &dto.GetTournamentResponse{Tournament: ToTournamentDTO(*tournament)}, nil
}

// ListTournaments returns a page of approved listings matching the directory filters
func (s *TournamentFlowImpl) ListTournaments(ctx context.Context, req *dto.ListTournamentsRequest) (*dto.ListTournamentsResponse, error) {
	filter := models.TournamentFilter{
		Status:    utils.ToPtr(models.TournamentStatusApproved),
		GameType:  req.GameType,
		TableSize: req.TableSize,
	}

	if req.State != nil {
		filter.VenueState = utils.ToPtr(strings.ToUpper(strings.TrimSpace(*req.State)))
	}

	if req.DateFrom != nil {
		if from, err := time.Parse(time.DateOnly, *req.DateFrom); err == nil {
			filter.DateAfter = &from
		}
	}
	if req.DateTo != nil {
		if to, err := time.Parse(time.DateOnly, *req.DateTo); err == nil {
			filter.DateBefore = utils.ToPtr(to.AddDate(0, 0, 1))
		}
	}

	tournaments, err := s.tournamentRepo.ByFilter(ctx, filter, "tournament_date ASC", req.Limit(), req.Offset())
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LIST_FAILED", "Failed to list tournaments", err)
	}

	total, err := s.tournamentRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_COUNT_FAILED", "Failed to count tournaments", err)
	}

	dtos := make([]dto.TournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		dtos = append(dtos, ToTournamentDTO(*t))
	}

	return &dto.ListTournamentsResponse{
		Message:     "Tournaments retrieved successfully",
		Tournaments: dtos,
		Total:       total,
		Page:        req.Page,
		PageSize:    req.Limit(),
	}, nil
}

// CancelTournament lets the creator withdraw their listing
func (s *TournamentFlowImpl) CancelTournament(ctx context.Context, req *dto.CancelTournamentRequest, metadata *ClientMetadata) (*dto.CancelTournamentResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	tournament, err := getTournamentByUUID(ctx, s.tournamentRepo, req.UUID)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LOOKUP_FAILED", "Failed to lookup tournament", err)
	}

	if tournament.CreatedBy != player.ID {
		return nil, NewBusinessError("TOURNAMENT_ACCESS_DENIED", "Tournament access denied", ErrTournamentAccessDenied)
	}
	if !tournament.CanTransitionTo(models.TournamentStatusCancelled) {
		return nil, NewBusinessError("INVALID_STATUS_TRANSITION", "Invalid status transition", ErrInvalidStatusTransition)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.tournamentRepo.UpdateStatus(txCtx, tournament.ID, models.TournamentStatusCancelled)
	})

	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_CANCEL_FAILED", "Tournament cancellation failed", err)
	}

	msg := fmt.Sprintf("Tournament cancelled: %s", tournament.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionTournamentCancelled, msg, true, nil, metadata)

	return &dto.CancelTournamentResponse{
		Message: "Tournament cancelled",
		Status:  models.TournamentStatusCancelled.String(),
	}, nil
}

// Private helper methods

func (s *TournamentFlowImpl) applyUpdate(ctx context.Context, tournament *models.Tournament, req *dto.UpdateTournamentRequest) error {
	if req.Name != nil {
		tournament.Name = *req.Name
	}
	if req.GameType != nil {
		tournament.GameType = *req.GameType
	}
	if req.TournamentFormat != nil {
		tournament.TournamentFormat = *req.TournamentFormat
	}
	if req.TableSize != nil {
		tournament.TableSize = *req.TableSize
	}
	if req.Equipment != nil {
		tournament.Equipment = req.Equipment
	}
	if req.EntryFee != nil {
		tournament.EntryFee = req.EntryFee
	}
	if req.MaxFargo != nil {
		tournament.MaxFargo = req.MaxFargo
	}
	if req.ReportsToFargo != nil {
		tournament.ReportsToFargo = req.ReportsToFargo
	}
	if req.OpenTournament != nil {
		tournament.OpenTournament = req.OpenTournament
	}
	if req.TournamentDate != nil {
		date, err := time.Parse(time.DateOnly, *req.TournamentDate)
		if err != nil {
			return err
		}
		if date.Before(utils.UTCNow().Truncate(24 * time.Hour)) {
			return ErrTournamentDateInPast
		}
		tournament.TournamentDate = date
	}
	if req.StartTime != nil {
		tournament.StartTime = req.StartTime
	}
	if req.Description != nil {
		tournament.Description = req.Description
	}
	if req.VenueUUID != nil {
		venue, err := s.venueRepo.ByUUID(ctx, *req.VenueUUID)
		if err != nil {
			return err
		}
		if venue == nil {
			return ErrVenueNotFound
		}
		tournament.VenueID = &venue.ID
	}

	return nil
}

func (s *TournamentFlowImpl) loadVenue(ctx context.Context, venueID *uint) *models.Venue {
	if venueID == nil {
		return nil
	}
	venue, err := s.venueRepo.ByID(ctx, *venueID)
	if err != nil {
		return nil
	}
	return venue
}

// DispatchMatching runs the match recorder in the background with a bounded
// timeout. The caller's request never waits on or fails with the pass.
func DispatchMatching(flow AlertMatchingFlow, tournament *models.Tournament) {
	if flow == nil || tournament == nil {
		return
	}

	snapshot := *tournament
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logx.Error("alert matching panicked", "tournament_id", snapshot.ID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), utils.MatchingTimeout)
		defer cancel()

		flow.RecordMatches(ctx, &snapshot)
	}()
}

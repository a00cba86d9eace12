// Package businessflow contains the core business logic and use cases for search alert workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/matching"
	"github.com/tannermartz/breakline/models"
	"github.com/tannermartz/breakline/repository"
	"github.com/tannermartz/breakline/utils"
	"gorm.io/gorm"
)

// SearchAlertFlow handles the search alert business logic
type SearchAlertFlow interface {
	CreateAlert(ctx context.Context, req *dto.CreateSearchAlertRequest, metadata *ClientMetadata) (*dto.CreateSearchAlertResponse, error)
	UpdateAlert(ctx context.Context, req *dto.UpdateSearchAlertRequest, metadata *ClientMetadata) (*dto.UpdateSearchAlertResponse, error)
	ListAlerts(ctx context.Context, req *dto.ListSearchAlertsRequest, metadata *ClientMetadata) (*dto.ListSearchAlertsResponse, error)
	DeleteAlert(ctx context.Context, req *dto.DeleteSearchAlertRequest, metadata *ClientMetadata) (*dto.DeleteSearchAlertResponse, error)
	PreviewAlert(ctx context.Context, req *dto.PreviewSearchAlertRequest, metadata *ClientMetadata) (*dto.PreviewSearchAlertResponse, error)
	ListAlertMatches(ctx context.Context, req *dto.ListAlertMatchesRequest, metadata *ClientMetadata) (*dto.ListAlertMatchesResponse, error)
}

// SearchAlertFlowImpl implements the search alert business flow
type SearchAlertFlowImpl struct {
	alertRepo      repository.SearchAlertRepository
	matchRepo      repository.AlertMatchRepository
	tournamentRepo repository.TournamentRepository
	playerRepo     repository.PlayerRepository
	auditRepo      repository.AuditLogRepository
	matchingFlow   AlertMatchingFlow
	db             *gorm.DB
}

// NewSearchAlertFlow creates a new search alert flow instance
func NewSearchAlertFlow(
	alertRepo repository.SearchAlertRepository,
	matchRepo repository.AlertMatchRepository,
	tournamentRepo repository.TournamentRepository,
	playerRepo repository.PlayerRepository,
	auditRepo repository.AuditLogRepository,
	matchingFlow AlertMatchingFlow,
	db *gorm.DB,
) SearchAlertFlow {
	return &SearchAlertFlowImpl{
		alertRepo:      alertRepo,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		auditRepo:      auditRepo,
		matchingFlow:   matchingFlow,
		db:             db,
	}
}

// CreateAlert saves a new named search alert for the player
func (s *SearchAlertFlowImpl) CreateAlert(ctx context.Context, req *dto.CreateSearchAlertRequest, metadata *ClientMetadata) (*dto.CreateSearchAlertResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	criteria := ToFilterCriteriaModel(req.Criteria)
	if err := validateCriteria(criteria); err != nil {
		return nil, NewBusinessError("ALERT_VALIDATION_FAILED", "Alert validation failed", err)
	}

	count, err := s.alertRepo.Count(ctx, models.SearchAlertFilter{PlayerID: &player.ID})
	if err != nil {
		return nil, NewBusinessError("ALERT_COUNT_FAILED", "Failed to count alerts", err)
	}
	if count >= utils.MaxAlertsPerPlayer {
		return nil, NewBusinessError("ALERT_LIMIT_REACHED", "Alert limit reached", ErrTooManyAlerts)
	}

	isActive := utils.ToPtr(true)
	if req.IsActive != nil {
		isActive = req.IsActive
	}

	// A blank description gets the generated summary of the criteria
	description := req.Description
	if description == nil || *description == "" {
		description = utils.ToPtr(matching.Describe(criteria))
	}

	alert := &models.SearchAlert{
		PlayerID:    player.ID,
		Name:        req.Name,
		Description: description,
		Criteria:    criteria,
		IsActive:    isActive,
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.alertRepo.Save(txCtx, alert)
	})

	if err != nil {
		errMsg := fmt.Sprintf("Alert creation failed: %s", err.Error())
		_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionAlertCreateFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("ALERT_CREATION_FAILED", "Alert creation failed", err)
	}

	msg := fmt.Sprintf("Alert created successfully: %s", alert.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionAlertCreated, msg, true, nil, metadata)

	s.matchingFlow.InvalidateAlertCache(ctx)

	return &dto.CreateSearchAlertResponse{
		Message: "Alert created successfully",
		Alert:   ToSearchAlertDTO(*alert),
	}, nil
}

// UpdateAlert edits an existing alert; nil request fields keep their value
func (s *SearchAlertFlowImpl) UpdateAlert(ctx context.Context, req *dto.UpdateSearchAlertRequest, metadata *ClientMetadata) (*dto.UpdateSearchAlertResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	alert, err := getAlertByUUID(ctx, s.alertRepo, req.UUID, player.ID)
	if err != nil {
		return nil, NewBusinessError("ALERT_LOOKUP_FAILED", "Failed to lookup alert", err)
	}

	if req.Name != nil {
		alert.Name = *req.Name
	}
	if req.Criteria != nil {
		criteria := ToFilterCriteriaModel(*req.Criteria)
		if err := validateCriteria(criteria); err != nil {
			return nil, NewBusinessError("ALERT_VALIDATION_FAILED", "Alert validation failed", err)
		}
		alert.Criteria = criteria
		alert.Description = utils.ToPtr(matching.Describe(criteria))
	}
	if req.Description != nil && *req.Description != "" {
		alert.Description = req.Description
	}
	if req.IsActive != nil {
		alert.IsActive = req.IsActive
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.alertRepo.Update(txCtx, *alert)
	})

	if err != nil {
		return nil, NewBusinessError("ALERT_UPDATE_FAILED", "Alert update failed", err)
	}

	msg := fmt.Sprintf("Alert updated successfully: %s", alert.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionAlertUpdated, msg, true, nil, metadata)

	s.matchingFlow.InvalidateAlertCache(ctx)

	return &dto.UpdateSearchAlertResponse{
		Message: "Alert updated successfully",
		Alert:   ToSearchAlertDTO(*alert),
	}, nil
}

// ListAlerts returns a page of the player's alerts
func (s *SearchAlertFlowImpl) ListAlerts(ctx context.Context, req *dto.ListSearchAlertsRequest, metadata *ClientMetadata) (*dto.ListSearchAlertsResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	alerts, err := s.alertRepo.ListByPlayer(ctx, player.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, NewBusinessError("ALERT_LIST_FAILED", "Failed to list alerts", err)
	}

	total, err := s.alertRepo.Count(ctx, models.SearchAlertFilter{PlayerID: &player.ID})
	if err != nil {
		return nil, NewBusinessError("ALERT_COUNT_FAILED", "Failed to count alerts", err)
	}

	dtos := make([]dto.SearchAlertDTO, 0, len(alerts))
	for _, alert := range alerts {
		dtos = append(dtos, ToSearchAlertDTO(*alert))
	}

	return &dto.ListSearchAlertsResponse{
		Message: "Alerts retrieved successfully",
		Alerts:  dtos,
		Total:   total,
	}, nil
}

// DeleteAlert removes one of the player's alerts along with its match history
func (s *SearchAlertFlowImpl) DeleteAlert(ctx context.Context, req *dto.DeleteSearchAlertRequest, metadata *ClientMetadata) (*dto.DeleteSearchAlertResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	alert, err := getAlertByUUID(ctx, s.alertRepo, req.UUID, player.ID)
	if err != nil {
		return nil, NewBusinessError("ALERT_LOOKUP_FAILED", "Failed to lookup alert", err)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.alertRepo.Delete(txCtx, alert.ID)
	})

	if err != nil {
		return nil, NewBusinessError("ALERT_DELETE_FAILED", "Alert deletion failed", err)
	}

	msg := fmt.Sprintf("Alert deleted successfully: %s", alert.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, player, models.AuditActionAlertDeleted, msg, true, nil, metadata)

	s.matchingFlow.InvalidateAlertCache(ctx)

	return &dto.DeleteSearchAlertResponse{Message: "Alert deleted successfully"}, nil
}

// ListAlertMatches returns the match history of one alert, newest first
func (s *SearchAlertFlowImpl) ListAlertMatches(ctx context.Context, req *dto.ListAlertMatchesRequest, metadata *ClientMetadata) (*dto.ListAlertMatchesResponse, error) {
	player, err := getPlayer(ctx, s.playerRepo, req.PlayerID)
	if err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	alert, err := getAlertByUUID(ctx, s.alertRepo, req.UUID, player.ID)
	if err != nil {
		return nil, NewBusinessError("ALERT_LOOKUP_FAILED", "Failed to lookup alert", err)
	}

	rows, err := s.matchRepo.ListByAlert(ctx, alert.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, NewBusinessError("MATCH_LIST_FAILED", "Failed to list matches", err)
	}

	matches := make([]dto.AlertMatchDTO, 0, len(rows))
	for _, row := range rows {
		m := dto.AlertMatchDTO{
			ID:        row.ID,
			MatchedAt: row.CreatedAt.Format(time.RFC3339),
		}
		if row.Tournament != nil {
			t := ToTournamentDTO(*row.Tournament)
			m.Tournament = &t
		}
		matches = append(matches, m)
	}

	return &dto.ListAlertMatchesResponse{
		Message: "Matches retrieved successfully",
		Matches: matches,
	}, nil
}

// PreviewAlert reports how many approved listings the criteria would match today
func (s *SearchAlertFlowImpl) PreviewAlert(ctx context.Context, req *dto.PreviewSearchAlertRequest, metadata *ClientMetadata) (*dto.PreviewSearchAlertResponse, error) {
	if _, err := getPlayer(ctx, s.playerRepo, req.PlayerID); err != nil {
		return nil, NewBusinessError("PLAYER_LOOKUP_FAILED", "Failed to lookup player", err)
	}

	criteria := ToFilterCriteriaModel(req.Criteria)
	if err := validateCriteria(criteria); err != nil {
		return nil, NewBusinessError("ALERT_VALIDATION_FAILED", "Alert validation failed", err)
	}

	tournaments, err := s.tournamentRepo.ListByStatus(ctx, models.TournamentStatusApproved, 0, 0)
	if err != nil {
		return nil, NewBusinessError("TOURNAMENT_LIST_FAILED", "Failed to list tournaments", err)
	}

	matched := 0
	for _, t := range tournaments {
		if matching.MatchesCriteria(t, criteria) {
			matched++
		}
	}

	return &dto.PreviewSearchAlertResponse{
		Message:     "Preview computed successfully",
		Description: matching.Describe(criteria),
		MatchCount:  matched,
	}, nil
}

// validateCriteria enforces cross-field rules the struct tags cannot express
func validateCriteria(c models.FilterCriteria) error {
	if c.EntryFeeMin != nil && c.EntryFeeMax != nil && *c.EntryFeeMin > *c.EntryFeeMax {
		return ErrInvalidFeeRange
	}

	if c.DateFrom != nil && c.DateTo != nil {
		from, errFrom := time.Parse(time.DateOnly, *c.DateFrom)
		to, errTo := time.Parse(time.DateOnly, *c.DateTo)
		if errFrom == nil && errTo == nil && from.After(to) {
			return ErrInvalidDateRange
		}
	}

	for _, day := range c.DaysOfWeek {
		if day < 0 || day > 6 {
			return ErrInvalidDayOfWeek
		}
	}

	return nil
}

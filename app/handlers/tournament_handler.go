// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/middleware"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/logx"
)

// TournamentHandlerInterface defines the contract for tournament handlers
type TournamentHandlerInterface interface {
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Cancel(c fiber.Ctx) error
}

// TournamentHandler handles tournament listing HTTP requests
type TournamentHandler struct {
	baseHandler
	tournamentFlow businessflow.TournamentFlow
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(tournamentFlow businessflow.TournamentFlow) *TournamentHandler {
	return &TournamentHandler{
		baseHandler:    newBaseHandler(),
		tournamentFlow: tournamentFlow,
	}
}

// Create submits a new tournament listing for review
// @Summary Submit Tournament
// @Description Submit a tournament listing; it enters the moderation queue as pending
// @Tags Tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTournamentRequest true "Tournament data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateTournamentResponse} "Tournament submitted"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/tournaments [post]
func (h *TournamentHandler) Create(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateTournamentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.PlayerID = playerID

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.tournamentFlow.CreateTournament(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsTournamentDateInPast(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Tournament date cannot be in the past", "DATE_IN_PAST", nil)
		}
		if businessflow.IsVenueNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Venue not found", "VENUE_NOT_FOUND", nil)
		}

		logx.Error("tournament create failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create tournament", "TOURNAMENT_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// Update edits an existing tournament listing owned by the caller
// @Summary Update Tournament
// @Description Edit a listing; approved listings trigger alert re-matching
// @Tags Tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Tournament UUID"
// @Param request body dto.UpdateTournamentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateTournamentResponse} "Tournament updated"
// @Failure 403 {object} dto.APIResponse "Not the creator"
// @Failure 404 {object} dto.APIResponse "Tournament not found"
// @Router /api/v1/tournaments/{uuid} [put]
func (h *TournamentHandler) Update(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateTournamentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.PlayerID = playerID
	req.UUID = c.Params("uuid")

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.tournamentFlow.UpdateTournament(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		return h.tournamentErrorResponse(c, err, "Failed to update tournament", "TOURNAMENT_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Get fetches a single tournament listing
// @Summary Get Tournament
// @Description Fetch one tournament by UUID
// @Tags Tournaments
// @Produce json
// @Param uuid path string true "Tournament UUID"
// @Success 200 {object} dto.APIResponse{data=dto.GetTournamentResponse} "Tournament retrieved"
// @Failure 404 {object} dto.APIResponse "Tournament not found"
// @Router /api/v1/tournaments/{uuid} [get]
func (h *TournamentHandler) Get(c fiber.Ctx) error {
	result, err := h.tournamentFlow.GetTournament(requestContext(c), c.Params("uuid"))
	if err != nil {
		if businessflow.IsTournamentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tournament not found", "TOURNAMENT_NOT_FOUND", nil)
		}

		logx.Error("tournament lookup failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get tournament", "TOURNAMENT_GET_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tournament retrieved successfully", result)
}

// List searches the approved tournament directory
// @Summary List Tournaments
// @Description Browse approved listings with optional filters
// @Tags Tournaments
// @Produce json
// @Param game_type query string false "Game type filter"
// @Param table_size query string false "Table size filter"
// @Param state query string false "Venue state filter"
// @Param date_from query string false "Earliest tournament date (YYYY-MM-DD)"
// @Param date_to query string false "Latest tournament date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListTournamentsResponse} "Tournaments retrieved"
// @Router /api/v1/tournaments [get]
func (h *TournamentHandler) List(c fiber.Ctx) error {
	req := dto.ListTournamentsRequest{
		PaginationRequest: paginationFromQuery(c),
	}
	if v := c.Query("game_type"); v != "" {
		req.GameType = &v
	}
	if v := c.Query("table_size"); v != "" {
		req.TableSize = &v
	}
	if v := c.Query("state"); v != "" {
		req.State = &v
	}
	if v := c.Query("date_from"); v != "" {
		req.DateFrom = &v
	}
	if v := c.Query("date_to"); v != "" {
		req.DateTo = &v
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.tournamentFlow.ListTournaments(requestContext(c), &req)
	if err != nil {
		logx.Error("tournament list failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list tournaments", "TOURNAMENT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Cancel withdraws a listing owned by the caller
// @Summary Cancel Tournament
// @Description Withdraw a listing; cancelled listings leave the directory
// @Tags Tournaments
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Tournament UUID"
// @Success 200 {object} dto.APIResponse{data=dto.CancelTournamentResponse} "Tournament cancelled"
// @Failure 404 {object} dto.APIResponse "Tournament not found"
// @Router /api/v1/tournaments/{uuid} [delete]
func (h *TournamentHandler) Cancel(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.CancelTournamentRequest{
		PlayerID: playerID,
		UUID:     c.Params("uuid"),
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.tournamentFlow.CancelTournament(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		return h.tournamentErrorResponse(c, err, "Failed to cancel tournament", "TOURNAMENT_CANCEL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *TournamentHandler) tournamentErrorResponse(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsTournamentNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Tournament not found", "TOURNAMENT_NOT_FOUND", nil)
	}
	if businessflow.IsTournamentAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "You do not own this tournament", "TOURNAMENT_ACCESS_DENIED", nil)
	}
	if businessflow.IsTournamentNotEditable(err) {
		return h.ErrorResponse(c, fiber.StatusConflict, "Tournament can no longer be edited", "TOURNAMENT_NOT_EDITABLE", nil)
	}
	if businessflow.IsInvalidStatusTransition(err) {
		return h.ErrorResponse(c, fiber.StatusConflict, "Invalid status transition", "INVALID_STATUS_TRANSITION", nil)
	}
	if businessflow.IsTournamentDateInPast(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Tournament date cannot be in the past", "DATE_IN_PAST", nil)
	}
	if businessflow.IsVenueNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Venue not found", "VENUE_NOT_FOUND", nil)
	}

	logx.Error(fallbackMessage, "error", err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}

// paginationFromQuery reads page and page_size query parameters, defaulting
// out-of-range values instead of erroring
func paginationFromQuery(c fiber.Ctx) dto.PaginationRequest {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return dto.PaginationRequest{Page: page, PageSize: pageSize}
}

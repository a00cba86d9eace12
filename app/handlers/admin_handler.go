// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/middleware"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/logx"
)

// AdminHandlerInterface defines the contract for admin handlers
type AdminHandlerInterface interface {
	Login(c fiber.Ctx) error
	ListPending(c fiber.Ctx) error
	Approve(c fiber.Ctx) error
	Reject(c fiber.Ctx) error
	ListPlayers(c fiber.Ctx) error
	SetPlayerStatus(c fiber.Ctx) error
}

// AdminHandler handles moderation HTTP requests
type AdminHandler struct {
	baseHandler
	adminFlow businessflow.AdminFlow
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminFlow businessflow.AdminFlow) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(),
		adminFlow:   adminFlow,
	}
}

// Login authenticates an admin account
// @Summary Admin Login
// @Description Authenticate an admin by email and password
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResponse} "Login successful"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /api/v1/admin/login [post]
func (h *AdminHandler) Login(c fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.adminFlow.Login(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsPlayerNotFound(err) || businessflow.IsIncorrectPassword(err) ||
			businessflow.IsNotAdmin(err) || businessflow.IsAccountInactive(err) {
			// One response for every failure mode so probing reveals nothing
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS", nil)
		}

		logx.Error("admin login failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ListPending returns the moderation queue
// @Summary List Pending Tournaments
// @Description List tournaments awaiting review, oldest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListPendingTournamentsResponse} "Queue retrieved"
// @Router /api/v1/admin/tournaments/pending [get]
func (h *AdminHandler) ListPending(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.ListPendingTournamentsRequest{
		PaginationRequest: paginationFromQuery(c),
		AdminID:           adminID,
	}

	result, err := h.adminFlow.ListPendingTournaments(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		return h.adminErrorResponse(c, err, "Failed to list pending tournaments", "PENDING_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Approve publishes a pending tournament listing
// @Summary Approve Tournament
// @Description Approve a pending listing; alert matching runs on approval
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Tournament UUID"
// @Param request body dto.ReviewTournamentRequest false "Optional reason"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewTournamentResponse} "Tournament approved"
// @Failure 409 {object} dto.APIResponse "Invalid status transition"
// @Router /api/v1/admin/tournaments/{uuid}/approve [post]
func (h *AdminHandler) Approve(c fiber.Ctx) error {
	return h.review(c, h.adminFlow.ApproveTournament)
}

// Reject declines a pending tournament listing
// @Summary Reject Tournament
// @Description Reject a pending listing with an optional reason
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Tournament UUID"
// @Param request body dto.ReviewTournamentRequest false "Optional reason"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewTournamentResponse} "Tournament rejected"
// @Failure 409 {object} dto.APIResponse "Invalid status transition"
// @Router /api/v1/admin/tournaments/{uuid}/reject [post]
func (h *AdminHandler) Reject(c fiber.Ctx) error {
	return h.review(c, h.adminFlow.RejectTournament)
}

// ListPlayers lists player accounts for admin review
// @Summary List Players
// @Description List player accounts, newest first, optionally filtered by active status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param is_active query bool false "Filter by active status"
// @Success 200 {object} dto.APIResponse{data=dto.ListPlayersResponse} "Players retrieved"
// @Router /api/v1/admin/players [get]
func (h *AdminHandler) ListPlayers(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.ListPlayersRequest{
		PaginationRequest: paginationFromQuery(c),
		AdminID:           adminID,
	}
	if v := c.Query("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid is_active filter", "INVALID_REQUEST", nil)
		}
		req.IsActive = &active
	}

	result, err := h.adminFlow.ListPlayers(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		return h.adminErrorResponse(c, err, "Failed to list players", "PLAYER_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// SetPlayerStatus activates or deactivates a player account
// @Summary Set Player Status
// @Description Activate or deactivate an account; deactivation expires its sessions
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Player UUID"
// @Param request body dto.SetPlayerStatusRequest true "Desired status"
// @Success 200 {object} dto.APIResponse{data=dto.SetPlayerStatusResponse} "Status updated"
// @Failure 404 {object} dto.APIResponse "Player not found"
// @Router /api/v1/admin/players/{uuid}/status [put]
func (h *AdminHandler) SetPlayerStatus(c fiber.Ctx) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.SetPlayerStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.AdminID = adminID
	req.PlayerUUID = c.Params("uuid")

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.adminFlow.SetPlayerStatus(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsPlayerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Player not found", "PLAYER_NOT_FOUND", nil)
		}
		return h.adminErrorResponse(c, err, "Failed to update player status", "PLAYER_STATUS_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

type reviewFunc func(ctx context.Context, req *dto.ReviewTournamentRequest, metadata *businessflow.ClientMetadata) (*dto.ReviewTournamentResponse, error)

func (h *AdminHandler) review(c fiber.Ctx, decide reviewFunc) error {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin authentication required", "ADMIN_AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.ReviewTournamentRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
		}
	}
	req.AdminID = adminID
	req.UUID = c.Params("uuid")

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := decide(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsTournamentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tournament not found", "TOURNAMENT_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidStatusTransition(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Invalid status transition", "INVALID_STATUS_TRANSITION", nil)
		}
		return h.adminErrorResponse(c, err, "Tournament review failed", "TOURNAMENT_REVIEW_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *AdminHandler) adminErrorResponse(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsNotAdmin(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Admin privileges required", "NOT_ADMIN", nil)
	}
	if businessflow.IsPlayerNotFound(err) || businessflow.IsAccountInactive(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Admin account is not available", "ADMIN_UNAVAILABLE", nil)
	}

	logx.Error(fallbackMessage, "error", err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}

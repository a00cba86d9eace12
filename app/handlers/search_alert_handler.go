// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/middleware"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/logx"
)

// SearchAlertHandlerInterface defines the contract for search alert handlers
type SearchAlertHandlerInterface interface {
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	Preview(c fiber.Ctx) error
	ListMatches(c fiber.Ctx) error
}

// SearchAlertHandler handles search alert HTTP requests
type SearchAlertHandler struct {
	baseHandler
	alertFlow businessflow.SearchAlertFlow
}

// NewSearchAlertHandler creates a new search alert handler
func NewSearchAlertHandler(alertFlow businessflow.SearchAlertFlow) *SearchAlertHandler {
	return &SearchAlertHandler{
		baseHandler: newBaseHandler(),
		alertFlow:   alertFlow,
	}
}

// Create saves a new search alert for the caller
// @Summary Create Search Alert
// @Description Save a named set of criteria; new matching tournaments trigger notifications
// @Tags Search Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSearchAlertRequest true "Alert data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateSearchAlertResponse} "Alert created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Alert limit reached"
// @Router /api/v1/alerts [post]
func (h *SearchAlertHandler) Create(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateSearchAlertRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.PlayerID = playerID

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.alertFlow.CreateAlert(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsTooManyAlerts(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Alert limit reached", "ALERT_LIMIT_REACHED", nil)
		}
		return h.alertErrorResponse(c, err, "Failed to create alert", "ALERT_CREATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// Update edits a search alert owned by the caller
// @Summary Update Search Alert
// @Description Edit an alert's name, criteria, description, or active flag
// @Tags Search Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Alert UUID"
// @Param request body dto.UpdateSearchAlertRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateSearchAlertResponse} "Alert updated"
// @Failure 404 {object} dto.APIResponse "Alert not found"
// @Router /api/v1/alerts/{uuid} [put]
func (h *SearchAlertHandler) Update(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateSearchAlertRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.PlayerID = playerID
	req.UUID = c.Params("uuid")

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.alertFlow.UpdateAlert(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		return h.alertErrorResponse(c, err, "Failed to update alert", "ALERT_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// List returns the caller's search alerts
// @Summary List Search Alerts
// @Description List the caller's saved alerts with match counts
// @Tags Search Alerts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListSearchAlertsResponse} "Alerts retrieved"
// @Router /api/v1/alerts [get]
func (h *SearchAlertHandler) List(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.ListSearchAlertsRequest{
		PaginationRequest: paginationFromQuery(c),
		PlayerID:          playerID,
	}

	result, err := h.alertFlow.ListAlerts(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		logx.Error("alert list failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list alerts", "ALERT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Delete removes a search alert owned by the caller
// @Summary Delete Search Alert
// @Description Delete an alert and stop its notifications
// @Tags Search Alerts
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Alert UUID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteSearchAlertResponse} "Alert deleted"
// @Failure 404 {object} dto.APIResponse "Alert not found"
// @Router /api/v1/alerts/{uuid} [delete]
func (h *SearchAlertHandler) Delete(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.DeleteSearchAlertRequest{
		PlayerID: playerID,
		UUID:     c.Params("uuid"),
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.alertFlow.DeleteAlert(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		return h.alertErrorResponse(c, err, "Failed to delete alert", "ALERT_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Preview dry-runs criteria against the approved directory
// @Summary Preview Search Alert
// @Description Count how many approved tournaments the criteria currently match
// @Tags Search Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PreviewSearchAlertRequest true "Criteria to preview"
// @Success 200 {object} dto.APIResponse{data=dto.PreviewSearchAlertResponse} "Preview computed"
// @Router /api/v1/alerts/preview [post]
func (h *SearchAlertHandler) Preview(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.PreviewSearchAlertRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.PlayerID = playerID

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.alertFlow.PreviewAlert(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		return h.alertErrorResponse(c, err, "Failed to preview alert", "ALERT_PREVIEW_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ListMatches returns the match history of one alert
// @Summary List Alert Matches
// @Description List the tournaments recorded against one alert, newest first
// @Tags Search Alerts
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Alert UUID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListAlertMatchesResponse} "Matches retrieved"
// @Failure 404 {object} dto.APIResponse "Alert not found"
// @Router /api/v1/alerts/{uuid}/matches [get]
func (h *SearchAlertHandler) ListMatches(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.ListAlertMatchesRequest{
		PaginationRequest: paginationFromQuery(c),
		PlayerID:          playerID,
		UUID:              c.Params("uuid"),
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.alertFlow.ListAlertMatches(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		return h.alertErrorResponse(c, err, "Failed to list alert matches", "ALERT_MATCHES_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *SearchAlertHandler) alertErrorResponse(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsAlertNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Alert not found", "ALERT_NOT_FOUND", nil)
	}
	if businessflow.IsAlertAccessDenied(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "You do not own this alert", "ALERT_ACCESS_DENIED", nil)
	}
	if businessflow.IsInvalidFeeRange(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Minimum entry fee exceeds maximum", "INVALID_FEE_RANGE", nil)
	}
	if businessflow.IsInvalidDateRange(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date range", "INVALID_DATE_RANGE", nil)
	}
	if businessflow.IsInvalidDayOfWeek(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Days of week must be between 0 and 6", "INVALID_DAY_OF_WEEK", nil)
	}

	logx.Error(fallbackMessage, "error", err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}

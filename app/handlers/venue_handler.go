// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/tannermartz/breakline/app/dto"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/logx"
)

// VenueHandlerInterface defines the contract for venue handlers
type VenueHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
}

// VenueHandler handles venue directory HTTP requests
type VenueHandler struct {
	baseHandler
	venueFlow businessflow.VenueFlow
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venueFlow businessflow.VenueFlow) *VenueHandler {
	return &VenueHandler{
		baseHandler: newBaseHandler(),
		venueFlow:   venueFlow,
	}
}

// Create adds a venue to the directory
// @Summary Create Venue
// @Description Add a pool hall or bar to the venue directory
// @Tags Venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVenueRequest true "Venue data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateVenueResponse} "Venue created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/venues [post]
func (h *VenueHandler) Create(c fiber.Ctx) error {
	var req dto.CreateVenueRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.venueFlow.CreateVenue(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		logx.Error("venue create failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create venue", "VENUE_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// List returns venues, optionally narrowed to one state
// @Summary List Venues
// @Description Browse the venue directory
// @Tags Venues
// @Produce json
// @Param state query string false "Two-letter state filter"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListVenuesResponse} "Venues retrieved"
// @Router /api/v1/venues [get]
func (h *VenueHandler) List(c fiber.Ctx) error {
	req := dto.ListVenuesRequest{
		PaginationRequest: paginationFromQuery(c),
	}
	if v := c.Query("state"); v != "" {
		req.State = &v
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.venueFlow.ListVenues(requestContext(c), &req)
	if err != nil {
		logx.Error("venue list failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list venues", "VENUE_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

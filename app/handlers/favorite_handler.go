// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/middleware"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/logx"
)

// FavoriteHandlerInterface defines the contract for favorite handlers
type FavoriteHandlerInterface interface {
	Add(c fiber.Ctx) error
	Remove(c fiber.Ctx) error
	List(c fiber.Ctx) error
}

// FavoriteHandler handles favorite HTTP requests
type FavoriteHandler struct {
	baseHandler
	favoriteFlow businessflow.FavoriteFlow
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteFlow businessflow.FavoriteFlow) *FavoriteHandler {
	return &FavoriteHandler{
		baseHandler:  newBaseHandler(),
		favoriteFlow: favoriteFlow,
	}
}

// Add favorites a tournament for the caller
// @Summary Add Favorite
// @Description Bookmark a tournament; adding twice is a no-op
// @Tags Favorites
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Tournament UUID"
// @Success 200 {object} dto.APIResponse{data=dto.AddFavoriteResponse} "Favorite added"
// @Failure 404 {object} dto.APIResponse "Tournament not found"
// @Router /api/v1/favorites/{uuid} [post]
func (h *FavoriteHandler) Add(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.AddFavoriteRequest{
		PlayerID:       playerID,
		TournamentUUID: c.Params("uuid"),
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.favoriteFlow.AddFavorite(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsTournamentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tournament not found", "TOURNAMENT_NOT_FOUND", nil)
		}

		logx.Error("favorite add failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add favorite", "FAVORITE_ADD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Remove deletes a favorite of the caller
// @Summary Remove Favorite
// @Description Remove a bookmarked tournament
// @Tags Favorites
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Tournament UUID"
// @Success 200 {object} dto.APIResponse{data=dto.RemoveFavoriteResponse} "Favorite removed"
// @Failure 404 {object} dto.APIResponse "Favorite not found"
// @Router /api/v1/favorites/{uuid} [delete]
func (h *FavoriteHandler) Remove(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.RemoveFavoriteRequest{
		PlayerID:       playerID,
		TournamentUUID: c.Params("uuid"),
	}

	if messages := h.validateStruct(&req); messages != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
	}

	result, err := h.favoriteFlow.RemoveFavorite(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsFavoriteNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Favorite not found", "FAVORITE_NOT_FOUND", nil)
		}
		if businessflow.IsTournamentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tournament not found", "TOURNAMENT_NOT_FOUND", nil)
		}

		logx.Error("favorite remove failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to remove favorite", "FAVORITE_REMOVE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// List returns the caller's favorited tournaments
// @Summary List Favorites
// @Description List bookmarked tournaments, newest first
// @Tags Favorites
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListFavoritesResponse} "Favorites retrieved"
// @Router /api/v1/favorites [get]
func (h *FavoriteHandler) List(c fiber.Ctx) error {
	playerID, ok := middleware.GetPlayerIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.ListFavoritesRequest{
		PaginationRequest: paginationFromQuery(c),
		PlayerID:          playerID,
	}

	result, err := h.favoriteFlow.ListFavorites(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		logx.Error("favorite list failed", "error", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list favorites", "FAVORITE_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

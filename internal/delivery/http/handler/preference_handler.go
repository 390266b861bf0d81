package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/pkg/utils"
	"github.com/venue-directory/internal/usecase"
	"github.com/venue-directory/internal/usecase/dto"
)

// PreferenceHandler - отметки "избранное" и "посещено"
type PreferenceHandler struct {
	venues  usecase.VenueLookup
	prefsUC *usecase.PreferenceUseCase
	logger  *zap.Logger
}

// NewPreferenceHandler - создание нового PreferenceHandler
func NewPreferenceHandler(venues usecase.VenueLookup, prefsUC *usecase.PreferenceUseCase, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		venues:  venues,
		prefsUC: prefsUC,
		logger:  logger,
	}
}

// AddFavorite godoc
// @Summary Добавить в избранное
// @Tags Preferences
// @Produce json
// @Param id path string true "ID заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.PreferenceResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id}/favorite [put]
func (h *PreferenceHandler) AddFavorite(c *fiber.Ctx) error {
	return h.toggle(c, h.prefsUC.SetFavorite, true)
}

// RemoveFavorite godoc
// @Summary Убрать из избранного
// @Tags Preferences
// @Produce json
// @Param id path string true "ID заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.PreferenceResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id}/favorite [delete]
func (h *PreferenceHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.toggle(c, h.prefsUC.SetFavorite, false)
}

// AddVisited godoc
// @Summary Отметить как посещённое
// @Tags Preferences
// @Produce json
// @Param id path string true "ID заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.PreferenceResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id}/visited [put]
func (h *PreferenceHandler) AddVisited(c *fiber.Ctx) error {
	return h.toggle(c, h.prefsUC.SetVisited, true)
}

// RemoveVisited godoc
// @Summary Снять отметку о посещении
// @Tags Preferences
// @Produce json
// @Param id path string true "ID заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.PreferenceResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id}/visited [delete]
func (h *PreferenceHandler) RemoveVisited(c *fiber.Ctx) error {
	return h.toggle(c, h.prefsUC.SetVisited, false)
}

// toggle - отметить можно только известное заведение, снять отметку - любое
func (h *PreferenceHandler) toggle(c *fiber.Ctx, set func(ctx context.Context, venueID string, enabled bool) error, enabled bool) error {
	venueID := c.Params("id")
	if enabled {
		if _, err := h.venues.Venue(venueID); err != nil {
			return utils.SendError(c, err)
		}
	}

	if err := set(c.UserContext(), venueID, enabled); err != nil {
		h.logger.Error("Failed to update preferences",
			zap.String("venue_id", venueID),
			zap.Bool("enabled", enabled),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PreferenceResponse{
		VenueID:  venueID,
		Favorite: h.prefsUC.IsFavorite(venueID),
		Visited:  h.prefsUC.IsVisited(venueID),
	}, nil)
}

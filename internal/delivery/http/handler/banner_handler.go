package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/pkg/errors"
	"github.com/venue-directory/internal/pkg/utils"
	"github.com/venue-directory/internal/usecase"
)

// BannerHandler - баннеры заведений
type BannerHandler struct {
	venues  usecase.VenueLookup
	banners *usecase.BannerCache
	logger  *zap.Logger
}

// NewBannerHandler - создание нового BannerHandler
func NewBannerHandler(venues usecase.VenueLookup, banners *usecase.BannerCache, logger *zap.Logger) *BannerHandler {
	return &BannerHandler{
		venues:  venues,
		banners: banners,
		logger:  logger,
	}
}

// GetBanner godoc
// @Summary Баннер заведения
// @Description Изображение из кеша. Пока баннер загружается, отдаётся заглушка со статусом 202; неудачная загрузка не повторяется.
// @Tags Venues
// @Produce image/png
// @Produce image/jpeg
// @Produce image/gif
// @Produce image/webp
// @Param id path string true "ID заведения"
// @Success 200 {file} binary "Баннер"
// @Success 202 {file} binary "Заглушка, баннер загружается"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id}/banner [get]
func (h *BannerHandler) GetBanner(c *fiber.Ctx) error {
	venueID := c.Params("id")
	venue, err := h.venues.Venue(venueID)
	if err != nil {
		return utils.SendError(c, err)
	}

	var bannerURI string
	if venue.BannerURI != nil {
		bannerURI = *venue.BannerURI
	}

	state, img := h.banners.Lookup(venue.ID, bannerURI)
	switch state {
	case usecase.BannerReady:
		c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
		c.Set(fiber.HeaderContentType, img.ContentType)
		return c.Send(img.Data)
	case usecase.BannerPending:
		if img == nil {
			return utils.SendError(c, errors.ErrBannerUnavailable)
		}
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Set(fiber.HeaderContentType, img.ContentType)
		return c.Status(fiber.StatusAccepted).Send(img.Data)
	default:
		return utils.SendError(c, errors.ErrBannerUnavailable.WithDetails(map[string]interface{}{
			"venue_id": venue.ID,
			"state":    state.String(),
		}))
	}
}

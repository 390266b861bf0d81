package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/pkg/utils"
	"github.com/venue-directory/internal/usecase"
)

// CatalogHandler - состояние и обновление каталога
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewCatalogHandler - создание нового CatalogHandler
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// GetState godoc
// @Summary Состояние каталога
// @Description Загружен ли каталог, идёт ли загрузка, ошибка последней загрузки и время обновления
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CatalogStateResponse}
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) GetState(c *fiber.Ctx) error {
	state := usecase.DescribeCatalogState(h.catalogUC.State(), time.Now())
	return utils.SendSuccess(c, state, &utils.Meta{
		Total:   state.VenueCount,
		Loading: state.Loading,
	})
}

// Refresh godoc
// @Summary Обновить каталог
// @Description Запускает загрузку каталога в фоне; одновременные запросы объединяются
// @Tags Catalog
// @Produce json
// @Success 202 {object} utils.SuccessResponse{data=dto.CatalogStateResponse}
// @Router /api/v1/catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	h.catalogUC.Refresh(c.UserContext())
	h.logger.Debug("Catalog refresh requested")

	state := usecase.DescribeCatalogState(h.catalogUC.State(), time.Now())
	return utils.SendAccepted(c, state, &utils.Meta{Loading: true})
}

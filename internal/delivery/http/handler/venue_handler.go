package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/pkg/utils"
	"github.com/venue-directory/internal/pkg/validator"
	"github.com/venue-directory/internal/usecase"
	"github.com/venue-directory/internal/usecase/dto"
)

// VenueHandler - список, карточка и варианты адреса заведений
type VenueHandler struct {
	venueUC      *usecase.VenueUseCase
	navigationUC *usecase.NavigationUseCase
	logger       *zap.Logger
}

// NewVenueHandler - создание нового VenueHandler
func NewVenueHandler(venueUC *usecase.VenueUseCase, navigationUC *usecase.NavigationUseCase, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{
		venueUC:      venueUC,
		navigationUC: navigationUC,
		logger:       logger,
	}
}

// List godoc
// @Summary Список заведений
// @Description Фильтрует и сортирует каталог. open_now и size_* по умолчанию включены, sfw_only важнее nsfw_only.
// @Tags Venues
// @Produce json
// @Param q query string false "Поиск по имени (без учёта регистра и декоративных символов)"
// @Param tags query string false "Подстрока тега"
// @Param region query string false "Регион или Any"
// @Param data_center query string false "Дата-центр или Any"
// @Param world query string false "Мир или Any"
// @Param open_now query bool false "Только открытые сейчас" default(true)
// @Param favorites query bool false "Только избранные"
// @Param visited query bool false "Только посещённые"
// @Param sfw_only query bool false "Только SFW"
// @Param nsfw_only query bool false "Только NSFW"
// @Param size_apartment query bool false "Квартиры" default(true)
// @Param size_small query bool false "Маленькие участки" default(true)
// @Param size_medium query bool false "Средние участки" default(true)
// @Param size_large query bool false "Большие участки" default(true)
// @Param sort query string false "Сортировка, например name:asc,status:desc"
// @Success 200 {object} utils.SuccessResponse{data=dto.VenueListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/venues [get]
func (h *VenueHandler) List(c *fiber.Ctx) error {
	var req dto.ListVenuesRequest
	if err := c.QueryParser(&req); err != nil {
		return sendInvalid(c, err)
	}
	if err := validator.Validate(&req); err != nil {
		return sendInvalid(c, err)
	}

	result, err := h.venueUC.List(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.Total,
		Visible: result.Visible,
	})
}

// Detail godoc
// @Summary Карточка заведения
// @Description Имя, адреса, предупреждение, описание со ссылками, расписание во времени зрителя, теги
// @Tags Venues
// @Produce json
// @Param id path string true "ID заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.VenueDetailResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id} [get]
func (h *VenueHandler) Detail(c *fiber.Ctx) error {
	result, err := h.venueUC.Detail(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Routes godoc
// @Summary Варианты адреса
// @Description Варианты адреса заведения и доступность навигации
// @Tags Venues
// @Produce json
// @Param id path string true "ID заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.RoutesResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id}/routes [get]
func (h *VenueHandler) Routes(c *fiber.Ctx) error {
	routes, err := h.venueUC.Routes(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.RoutesResponse{
		Routes:              routes,
		NavigationAvailable: h.navigationUC.Available(c.UserContext()),
	}, &utils.Meta{Total: len(routes)})
}

// Options godoc
// @Summary Значения фильтров
// @Description Регионы, дата-центры выбранного региона и миры выбранного дата-центра
// @Tags Venues
// @Produce json
// @Param region query string false "Регион или Any"
// @Param data_center query string false "Дата-центр или Any"
// @Success 200 {object} utils.SuccessResponse{data=dto.OptionsResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/options [get]
func (h *VenueHandler) Options(c *fiber.Ctx) error {
	var req dto.OptionsRequest
	if err := c.QueryParser(&req); err != nil {
		return sendInvalid(c, err)
	}
	if err := validator.Validate(&req); err != nil {
		return sendInvalid(c, err)
	}

	result, err := h.venueUC.Options(req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/pkg/utils"
	"github.com/venue-directory/internal/pkg/validator"
	"github.com/venue-directory/internal/usecase"
	"github.com/venue-directory/internal/usecase/dto"
)

// NavigationHandler - перемещение к заведению через внешнюю интеграцию
type NavigationHandler struct {
	navigationUC *usecase.NavigationUseCase
	logger       *zap.Logger
}

// NewNavigationHandler - создание нового NavigationHandler
func NewNavigationHandler(navigationUC *usecase.NavigationUseCase, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		navigationUC: navigationUC,
		logger:       logger,
	}
}

// Visit godoc
// @Summary Перейти к заведению
// @Description Передаёт выбранный вариант адреса в интеграцию навигации. Индекс вне диапазона заменяется первым вариантом.
// @Tags Navigation
// @Accept json
// @Produce json
// @Param id path string true "ID заведения"
// @Param request body dto.VisitRequest false "Индекс варианта адреса"
// @Success 200 {object} utils.SuccessResponse{data=dto.VisitResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id}/visit [post]
func (h *NavigationHandler) Visit(c *fiber.Ctx) error {
	var req dto.VisitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return sendInvalid(c, err)
		}
	}
	if err := validator.Validate(&req); err != nil {
		return sendInvalid(c, err)
	}

	route, err := h.navigationUC.Visit(c.UserContext(), c.Params("id"), req.RouteIndex)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.VisitResponse{Route: route}, nil)
}

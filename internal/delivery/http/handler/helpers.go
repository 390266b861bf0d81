package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/venue-directory/internal/pkg/errors"
	"github.com/venue-directory/internal/pkg/utils"
)

// sendInvalid - ответ 400 с причиной ошибки разбора или валидации
func sendInvalid(c *fiber.Ctx, err error) error {
	return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"reason": err.Error(),
	}))
}

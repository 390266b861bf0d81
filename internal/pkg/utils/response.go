package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/venue-directory/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total       int    `json:"total,omitempty"`
	Visible     int    `json:"visible,omitempty"`
	Loading     bool   `json:"loading,omitempty"`
	LastRefresh string `json:"last_refresh,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendAccepted - ответ 202 для данных, которые ещё догружаются
func SendAccepted(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.Status(fiber.StatusAccepted).JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}

// error_utils.go
package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Backend-Schoolhub/src/models"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// StatusFor maps core errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrPersonNotFound), errors.Is(err, models.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrEmptyRoster):
		return fiber.StatusBadRequest
	case models.IsStorageError(err):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleServiceError ส่ง error จาก service กลับไปพร้อม status ที่เหมาะสม
func HandleServiceError(c *fiber.Ctx, err error) error {
	return HandleError(c, StatusFor(err), err.Error())
}

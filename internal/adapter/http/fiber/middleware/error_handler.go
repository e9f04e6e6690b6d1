package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/domain"
)

// ErrorHandler maps domain errors to HTTP status codes. Handlers return
// raw errors; the mapping lives here so every route agrees on codes.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case domain.IsNotFound(err):
			code = fiber.StatusNotFound
		case domain.IsNoAvailableOutlet(err):
			code = fiber.StatusConflict
		case domain.IsInsufficientFunds(err):
			code = fiber.StatusPaymentRequired
		case domain.IsInvalidState(err), domain.IsValidation(err):
			code = fiber.StatusBadRequest
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resumegpt-be/internal/apperror"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses so
// controllers can return errors untranslated.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := err.Error()

		var fiberErr *fiber.Error
		var invalidConfig *apperror.InvalidConfigurationError
		var notFound *apperror.NotFoundError
		var storeUnavailable *apperror.StoreUnavailableError
		var generationFailed *apperror.GenerationFailedError

		switch {
		case errors.Is(err, apperror.ErrEmptyQuestion):
			status = fiber.StatusBadRequest
		case errors.As(err, &invalidConfig):
			status = fiber.StatusBadRequest
		case errors.As(err, &notFound):
			status = fiber.StatusNotFound
		case errors.As(err, &storeUnavailable):
			status = fiber.StatusBadGateway
		case errors.As(err, &generationFailed):
			status = fiber.StatusBadGateway
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		}

		return ctx.Status(status).JSON(ErrorResponse{
			Success: false,
			Message: message,
		})
	}
}

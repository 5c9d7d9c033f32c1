package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rbwdog/hata-masazhu/dto"
	"github.com/rbwdog/hata-masazhu/shared"
)

// NewErrorHandler builds the app-wide error handler. Validation and delivery
// failures carry their own status and user-safe message; anything unexpected
// is logged, reported through alert (best-effort, may be nil) and answered
// with a generic 500.
func NewErrorHandler(alert func(title string, details ...string)) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := shared.GetAppError(err); ok {
			return c.Status(appErr.StatusCode).JSON(dto.ErrorResponse{Error: appErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{Error: fiberErr.Message})
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
		if alert != nil {
			alert("Внутрішня помилка обробки запиту", c.Method()+" "+c.Path(), err.Error())
		}

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: dto.MsgInternalError})
	}
}

// Package response renders errors as JSON bodies.
package response

import (
	"errors"

	"teslo/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Error writes err as {"message", "error", "errors"}. Errors outside the
// taxonomy are logged and reported as Internal.
func Error(c *fiber.Ctx, err error) error {
	appErr, ok := apperrors.As(err)
	if !ok {
		zap.L().Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		appErr = &apperrors.Error{Kind: apperrors.KindInternal, Message: apperrors.InternalMessage, Err: err}
	}

	status := appErr.Status()
	body := fiber.Map{
		"message": appErr.Message,
		"error":   utils.StatusMessage(status),
	}
	if len(appErr.Fields) > 0 {
		fields := make(map[string]string, len(appErr.Fields))
		for _, f := range appErr.Fields {
			if _, exists := fields[f.Field]; !exists {
				fields[f.Field] = f.Message
			}
		}
		body["errors"] = fields
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler is the fiber.Config error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"message": fe.Message,
			"error":   utils.StatusMessage(fe.Code),
		})
	}
	return Error(c, err)
}

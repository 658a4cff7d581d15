package handlers

import (
	"errors"
	"log/slog"

	"talenthub/internal/apperr"
	"talenthub/internal/dto"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInactivePosting, apperr.KindDeadlinePassed:
		return fiber.StatusBadRequest
	case apperr.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperr.KindAuthorization:
		return fiber.StatusForbidden
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindConflict, apperr.KindDuplicateApplication:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error returned by a handler in the common
// envelope. Server errors are logged and reported; their details never
// reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	resp := dto.ErrorResponse{Message: "Internal server error"}

	var appErr *apperr.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = StatusFor(appErr.Kind)
		resp.Message = appErr.Message
		resp.Errors = appErr.Fields
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		resp.Message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		resp.Message = "Internal server error"
		resp.Errors = nil
	}

	return c.Status(code).JSON(resp)
}

func badBody(err error) error {
	slog.Debug("invalid request body", "error", err)
	return apperr.Validation("Invalid request body", nil)
}

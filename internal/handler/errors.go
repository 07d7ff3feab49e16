package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"quicksell-pos/internal/apperr"
)

type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// StatusOf maps an error kind onto its HTTP status.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindStoreUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func toErrorResponse(err error) (int, ErrorResponse) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return StatusOf(appErr.Kind()), ErrorResponse{
			Code:    appErr.Code(),
			Message: appErr.Msg(),
			Details: appErr.Details(),
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, ErrorResponse{Code: "HTTP_ERROR", Message: fiberErr.Message}
	}

	return fiber.StatusInternalServerError, ErrorResponse{Code: "INTERNAL_ERROR", Message: "an unknown error occurred"}
}

// ErrorHandler renders every error returned by a handler as an
// ErrorResponse. Server-side failures are logged with their cause.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := toErrorResponse(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Int("status", status),
				slog.Any("error", err))
		}
		return c.Status(status).JSON(body)
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "BAD_REQUEST", Message: msg})
}

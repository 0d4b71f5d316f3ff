package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"mediaapi/internal/http/middleware"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"
)

// errorPayload is the error response body shared by every route.
type errorPayload struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response. message must be safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Message:   message,
		Code:      code,
		RequestID: requestIDFromCtx(c),
	})
}

var validationErrors = []error{
	service.ErrTooManyFiles,
	service.ErrFileTooLarge,
	service.ErrPublicIDRequired,
	service.ErrItemsRequired,
	service.ErrFolderNameRequired,
	service.ErrFolderPathRequired,
	service.ErrNewNameRequired,
}

// writeServiceError maps a service error to a response. Validation failures become 400 with
// their own message; anything else is logged with the operation and answered with a generic 500.
func writeServiceError(c *fiber.Ctx, log zerolog.Logger, op string, err error) error {
	if errors.Is(err, service.ErrNoFiles) {
		return writeError(c, fiber.StatusBadRequest, "NO_FILES", "No files uploaded")
	}
	if errors.Is(err, storage.ErrInvalidCursor) {
		return writeError(c, fiber.StatusBadRequest, "INVALID_CURSOR", "invalid nextCursor")
	}
	if errors.Is(err, storage.ErrFolderExists) {
		return writeError(c, fiber.StatusConflict, "FOLDER_EXISTS", "destination folder already exists")
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}
	}

	log.Error().Err(err).
		Str("request_id", requestIDFromCtx(c)).
		Str("op", op).
		Msg("request failed")
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "unauthorized")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}

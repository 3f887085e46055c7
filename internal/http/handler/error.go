package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kycapi/internal/http/middleware"
	"kycapi/internal/logging"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "MISSING_FIELD", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
	})
}

// writeErrorDetail is writeError plus the failure reason in the error field.
// Used where clients display why a submission was refused.
func writeErrorDetail(c *fiber.Ctx, status int, code, message string, err error) error {
	if status >= fiber.StatusInternalServerError {
		logging.From(c.UserContext()).Error(message, "error", err.Error(), "code", code)
	}
	return c.Status(status).JSON(errorPayload{
		Code:      code,
		Message:   message,
		Error:     err.Error(),
		RequestID: middleware.GetRequestID(c),
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			logging.From(c.UserContext()).Error("unhandled error", "error", err.Error(), "path", c.Path())
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

package middleware

import (
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"kycapi/internal/logging"
)

// Logger logs each HTTP request through the process logger.
func Logger() fiber.Handler {
	return requestLogger(logging.Default())
}

// LoggerWithWriter logs each HTTP request as one JSON line written to w,
// with timestamps rendered in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return requestLogger(logging.New(w, "info", loc))
}

// requestLogger writes request_id, method, path, status and latency (ms).
// Downstream handlers get a logger carrying the request_id through the user context.
func requestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		logger := base.With("request_id", GetRequestID(c))
		c.SetUserContext(logging.With(c.UserContext(), logger))

		err := c.Next()

		status := statusOf(c, err)
		latency := float64(time.Since(start).Microseconds()) / 1000

		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.UserContext(), level, "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", latency,
		)
		return err
	}
}

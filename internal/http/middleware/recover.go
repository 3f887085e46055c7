package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"kycapi/internal/logging"
)

// Recover turns a panic in a downstream handler into a 500 handled by the
// app's ErrorHandler, logging the stack.
func Recover() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.From(c.UserContext()).Error("panic recovered",
					"panic", fmt.Sprint(r),
					"path", c.Path(),
					"stack", string(debug.Stack()),
				)
				err = fiber.NewError(fiber.StatusInternalServerError, "internal server error")
			}
		}()
		return c.Next()
	}
}

package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Audit writes one structured log line per handled request: method, path,
// status, latency, the request id, and the authenticated user when the JWT
// guard has identified one.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("duration", time.Since(started)),
		}
		if rid, _ := c.Locals(requestIDHeader).(string); rid != "" {
			attrs = append(attrs, slog.String("request_id", rid))
		}
		if uid, ok := c.Locals("user_id").(int64); ok {
			attrs = append(attrs, slog.Int64("user_id", uid))
		}

		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
			logger.Error("request handled", attrs...)
			return err
		}
		logger.Info("request handled", attrs...)
		return nil
	}
}

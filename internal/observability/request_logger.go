package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger logs each request with a generated request id and feeds the
// request metrics. The endpoint label is the dispatch selector when present,
// the route path otherwise.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)

		err := c.Next()

		endpoint := c.Query("endpoint")
		if endpoint == "" {
			endpoint = c.Path()
		}
		duration := time.Since(start)
		status := c.Response().StatusCode()

		metrics.RecordRequest(endpoint, c.Method(), status, duration)
		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		)
		return err
	}
}

package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/intake-service/internal/api/http/handlers"
	"github.com/spec-kit/intake-service/internal/observability"
	apperrors "github.com/spec-kit/intake-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware is the outermost failure boundary: every error and
// every panic collapses into a well-formed response envelope, so callers
// never see a raw fault. Fiber's own 404/405 errors on non-dispatch paths
// keep their status but are wrapped in the same envelope shape.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewServerError(nil)
			}
			if err != nil {
				status := http.StatusInternalServerError
				message := "Server error"

				endpoint := c.Query("endpoint")
				if endpoint == "" {
					endpoint = c.Path()
				}

				var fiberErr *fiber.Error
				if errors.As(err, &fiberErr) {
					status = fiberErr.Code
					message = fiberErr.Message
				} else {
					domainErr := apperrors.ToDomainError(err)
					status = domainErr.HTTPStatus
					message = domainErr.Message
					metrics.RecordError(endpoint, domainErr.Code)
					if status >= 500 {
						logger.Error("request failed", zap.Error(domainErr))
					}
				}

				err = handlers.Respond(c, status, message)
			}
		}()
		return c.Next()
	}
}

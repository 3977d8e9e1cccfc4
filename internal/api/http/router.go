package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/intake-service/internal/api/http/handlers"
	"github.com/spec-kit/intake-service/internal/observability"
	apperrors "github.com/spec-kit/intake-service/pkg/util"
)

// Endpoint selectors accepted on the dispatch route.
const (
	EndpointLogin         = "/login"
	EndpointSubmit        = "/submit"
	EndpointRecentEntries = "/recent-entries"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Entries *handlers.EntriesHandler
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Intake operations share one POST route
// and are selected by the `endpoint` query parameter; anything else on that
// route is an invalid endpoint regardless of body.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(
			cfg.Metrics.Registry, promhttp.HandlerOpts{},
		)))
	}

	app.Post("/", dispatch(cfg))
}

func dispatch(cfg RouteConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var handler fiber.Handler
		switch c.Query("endpoint") {
		case EndpointLogin:
			handler = cfg.Auth.Login
		case EndpointSubmit:
			handler = cfg.Entries.Submit
		case EndpointRecentEntries:
			handler = cfg.Entries.Recent
		default:
			// selector is checked before the body: an unknown endpoint is
			// 400 no matter what the body contains
			return apperrors.NewInvalidEndpoint()
		}

		if body := c.Body(); len(body) > 0 && !json.Valid(body) {
			return apperrors.NewServerError(errors.New("malformed request body"))
		}
		return handler(c)
	}
}

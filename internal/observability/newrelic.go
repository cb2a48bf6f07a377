package observability

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/lottalogs/lottalogs/internal/config"
)

// NewApplication starts the New Relic agent. It returns nil, nil when no
// license key is configured; a nil *newrelic.Application is safe to use.
func NewApplication(cfg *config.ObservabilityConfig, logger zerolog.Logger) (*newrelic.Application, error) {
	if !cfg.NewRelicEnabled() {
		logger.Info().Str("component", "observability").Msg("new relic disabled (no license key)")
		return nil, nil
	}
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.ServiceName+"-"+cfg.Environment),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("new relic application: %w", err)
	}
	logger.Info().Str("component", "observability").Msg("new relic enabled")
	return app, nil
}

// Middleware wraps every request in a New Relic web transaction and stores it
// in the request context, so downstream calls can attach segments.
func Middleware(app *newrelic.Application) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if app == nil {
				return next(c)
			}
			req := c.Request()
			txn := app.StartTransaction(req.Method + " " + c.Path())
			defer txn.End()

			txn.SetWebRequestHTTP(req)
			c.Response().Writer = txn.SetWebResponse(c.Response().Writer)
			c.SetRequest(req.WithContext(newrelic.NewContext(req.Context(), txn)))

			err := next(c)
			if err != nil {
				txn.NoticeError(err)
			}
			return err
		}
	}
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/lottalogs/lottalogs/internal/config"
	"github.com/lottalogs/lottalogs/internal/handler"
	"github.com/lottalogs/lottalogs/internal/observability"
	"github.com/lottalogs/lottalogs/internal/response"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the server wires into its handlers.
// History and NewRelic are optional.
type Deps struct {
	Searcher handler.SearchService
	History  handler.HistoryStore
	NewRelic *newrelic.Application
	Logger   zerolog.Logger
}

// Server holds the Echo app and the http.Server it runs on.
type Server struct {
	Echo   *echo.Echo
	Config *config.Config
	logger zerolog.Logger
	http   *http.Server
}

// New builds the Echo app and registers routes.
func New(cfg *config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		requestLogger(deps.Logger),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Server.CORSAllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		}),
		observability.Middleware(deps.NewRelic),
	)

	logs := &handler.LogsHandler{
		Searcher: deps.Searcher,
		History:  deps.History,
		Logger:   deps.Logger,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return response.OK(c, map[string]string{"status": "ok"}, "")
	})

	g := e.Group("/api/logs")
	g.GET("", logs.Search)
	g.GET("/", logs.Search)
	g.GET("/status", logs.Status)
	g.GET("/history", logs.ListHistory)

	deps.Logger.Info().
		Str("component", "server").
		Bool("history", deps.History != nil).
		Bool("compress", cfg.Server.Compress).
		Msg("routes registered")

	return &Server{Echo: e, Config: cfg, logger: deps.Logger}
}

// Handler returns the root http.Handler, gzip-wrapped when compression is on.
func (s *Server) Handler() http.Handler {
	if s.Config.Server.Compress {
		return gzhttp.GzipHandler(s.Echo)
	}
	return s.Echo
}

// Start serves HTTP until ctx is cancelled or the listener fails. On cancel
// the server drains in-flight requests before returning.
func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("component", "server").Str("addr", s.http.Addr).Msg("listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	s.logger.Info().Str("component", "server").Msg("shutting down")
	return s.http.Shutdown(ctx)
}

func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			ev := logger.Info()
			if v.Error != nil {
				ev = logger.Error().Err(v.Error)
			}
			ev.Str("component", "http").
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottalogs/lottalogs/internal/config"
)

func TestNewApplication_DisabledWithoutLicense(t *testing.T) {
	app, err := NewApplication(config.DefaultObservabilityConfig(), zerolog.Nop())

	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestMiddleware_NilApplicationPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(Middleware(nil))
	e.GET("/ping", func(c echo.Context) error {
		assert.Nil(t, newrelic.FromContext(c.Request().Context()))
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

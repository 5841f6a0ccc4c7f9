package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"cookbook/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugLoggerMiddleware(buf *bytes.Buffer) *LoggerMiddleware {
	cfg := &config.Config{}
	cfg.Env.Debug = true
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return NewLoggerMiddleware(logger, cfg)
}

func runLoggedRequest(t *testing.T, m *LoggerMiddleware, target string) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.Handle(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
}

func TestLoggerMiddleware_RedactsAuthQueryString(t *testing.T) {
	buf := &bytes.Buffer{}
	m := newDebugLoggerMiddleware(buf)

	runLoggedRequest(t, m, "/auth/users/42/delete?token=secret_one_time_token")

	assert.Contains(t, buf.String(), "/auth/users/42/delete")
	assert.NotContains(t, buf.String(), "secret_one_time_token")
}

func TestLoggerMiddleware_LogsQueryStringElsewhere(t *testing.T) {
	buf := &bytes.Buffer{}
	m := newDebugLoggerMiddleware(buf)

	runLoggedRequest(t, m, "/cookbooks/42/share?size=256")

	assert.Contains(t, buf.String(), "size=256")
}

package obs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/availability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	m.ObserveMessage("query", "availability.window", nil, time.Millisecond)
	m.ObserveWindow([]availability.DateInfo{{Status: availability.Available}, {Status: availability.Unavailable}})
	m.ObserveQuote("ok")
	m.ObserveCache("redis", "hit")
	m.ObservePublish(errors.New("broker down"))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"staybook_http_requests_total",
		"staybook_bus_messages_total",
		"staybook_windows_generated_total 1",
		`staybook_window_days_total{status="unavailable"} 1`,
		`staybook_quotes_total{outcome="ok"} 1`,
		`staybook_session_store_events_total{event="hit",store="redis"} 1`,
		`staybook_outbox_published_total{outcome="error"} 1`,
	} {
		assert.Contains(t, out, name)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("/", "GET", 200, 0)
		m.ObserveMessage("command", "x", nil, 0)
		m.ObserveWindow(nil)
		m.ObserveQuote("ok")
		m.ObserveCache("memory", "miss")
		m.ObservePublish(nil)
	})
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	m := NewMetrics()
	mw := Middleware{Logger: newLogger(&logs, "prod"), Metrics: m}

	r := gin.New()
	r.Use(mw.RequestID(), mw.AccessLog())
	var seen string
	var headers map[string]string
	r.GET("/ping", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		headers = CorrelationHeaders(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, map[string]string{"x-request-id": "req-42"}, headers)
	assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
	assert.Contains(t, logs.String(), `"request_id":"req-42"`)
	assert.Contains(t, logs.String(), `"service":"staybook"`)
	assert.Contains(t, logs.String(), `"route":"/ping"`)
	assert.Contains(t, logs.String(), `"level":"INFO"`)

	logs.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"route":"unmatched"`)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, rr.Header().Get("X-Request-ID"), 36)
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Nil(t, CorrelationHeaders(context.Background()))
}

func TestHealthHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	healthy := true
	h := HealthHandlers{Checks: map[string]Check{
		"redis": func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("connection refused")
		},
	}}
	r := gin.New()
	r.GET("/livez", h.Livez)
	r.GET("/readyz", h.Readyz)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	healthy = false
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "connection refused"))
}

func TestDevLoggerUsesTint(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "dev").Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=")
}

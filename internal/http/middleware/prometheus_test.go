package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	pm, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(pm.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/api/admin/kyc-verification", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Get("/api/admin/kyc-applications/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "missing" {
			return fiber.NewError(fiber.StatusNotFound, "not found")
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/api/chat", func(c *fiber.Ctx) error { return errors.New("llm unavailable") })
	return app, pm, reg
}

func TestPrometheusMiddleware_Counts(t *testing.T) {
	app, pm, _ := newMetricsApp(t)

	cases := []struct {
		method, target string
		route, status  string
	}{
		{"POST", "/api/admin/kyc-verification", "/api/admin/kyc-verification", "201"},
		{"GET", "/api/admin/kyc-applications/123", "/api/admin/kyc-applications/:id", "200"},
		{"GET", "/api/admin/kyc-applications/missing", "/api/admin/kyc-applications/:id", "404"},
		{"POST", "/api/chat", "/api/chat", "500"},
	}
	for _, tc := range cases {
		_, err := app.Test(httptest.NewRequest(tc.method, tc.target, nil))
		require.NoError(t, err)

		got := testutil.ToFloat64(pm.requestCount.WithLabelValues(tc.method, tc.route, tc.status))
		assert.Equal(t, 1.0, got, "%s %s", tc.method, tc.target)
	}

	assert.Equal(t, 3, testutil.CollectAndCount(pm.requestDuration))
	assert.Zero(t, testutil.ToFloat64(pm.inFlight))
}

func TestPrometheusMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	app, _, reg := newMetricsApp(t)

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		switch mf.GetName() {
		case "http_requests_total", "http_request_duration_seconds":
			assert.Empty(t, mf.GetMetric(), mf.GetName())
		}
	}
}

func TestPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}

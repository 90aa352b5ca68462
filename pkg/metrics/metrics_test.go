package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/coconina/storefront/pkg/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/api/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/origins-br-001", nil))

	body := scrape(t)
	assert.Contains(t, body, `coconina_http_requests_total{method="GET",path="/api/products/{id}",status="404"} 1`)
	assert.NotContains(t, body, "origins-br-001")
}

func TestObserveGatewayAndFallback(t *testing.T) {
	outcome := "status"
	metrics.ObserveGateway("metrics_test", time.Now(), &outcome)
	metrics.RecordFallback("metrics_test", "unconfigured")

	body := scrape(t)
	assert.Contains(t, body, `coconina_gateway_requests_total{operation="metrics_test",outcome="status"} 1`)
	assert.Contains(t, body, `coconina_gateway_fallbacks_total{operation="metrics_test",reason="unconfigured"} 1`)
}

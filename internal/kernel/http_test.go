package kernel_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coconina/storefront/app/controllers"
	"github.com/coconina/storefront/app/services"
	"github.com/coconina/storefront/config"
	"github.com/coconina/storefront/internal/kernel"
	"github.com/coconina/storefront/pkg/reqid"
	"github.com/coconina/storefront/pkg/testkit"
)

func newKernel(t *testing.T) *kernel.HTTPKernel {
	t.Helper()
	k, err := kernel.NewHTTPKernel(services.NewGateway(""), controllers.LinkConfig{Number: "+17863918722"}, "memory")
	require.NoError(t, err)
	return k
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	return getFrom(h, target, "")
}

// getFrom sends the request from one peer, optionally claiming realIP.
func getFrom(h http.Handler, target, realIP string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "203.0.113.9:4000"
	if realIP != "" {
		req.Header.Set("X-Real-IP", realIP)
		req.Header.Set("X-Forwarded-For", realIP)
	}
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newKernel(t).Handler()
	env := testkit.DecodeEnvelope(t, get(h, "/healthz"), http.StatusOK)

	var health kernel.Health
	testkit.DecodeData(t, env, &health)
	assert.Equal(t, kernel.Health{Status: "ok", Mode: "fixtures", Cache: "memory"}, health)
}

func TestStack_RequestIDAndCORS(t *testing.T) {
	rec := get(newKernel(t).Handler(), "/api/categories")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownPathIsJSON404(t *testing.T) {
	env := testkit.DecodeEnvelope(t, get(newKernel(t).Handler(), "/nope"), http.StatusNotFound)
	assert.Equal(t, "Not found", env.Message)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newKernel(t).Handler()
	get(h, "/api/products")

	rec := get(h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coconina_http_requests_total")
}

func TestRoutesAreNamed(t *testing.T) {
	k := newKernel(t)

	for _, name := range []string{"products.index", "products.show", "categories.index", "contact.submit", "whatsapp.link", "inquiry.show", "inquiry.update", "graphql", "metrics", "healthz"} {
		_, ok := k.Router.Path(name)
		assert.True(t, ok, name)
	}
	url, err := k.Router.URL("products.show", map[string]string{"id": "origins-br-002"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/origins-br-002", url)
}

func TestInquiryModalIsKernelOwned(t *testing.T) {
	k := newKernel(t)
	h := k.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/inquiry/open", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, k.Inquiry.IsOpen())

	k.Inquiry.Close()
	var state controllers.InquiryState
	testkit.DecodeData(t, testkit.DecodeEnvelope(t, get(h, "/api/inquiry"), http.StatusOK), &state)
	assert.False(t, state.Open)
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	config.Set("RATE_LIMIT_PER_MINUTE", "2")
	t.Cleanup(func() { config.Set("RATE_LIMIT_PER_MINUTE", "120") })

	h := newKernel(t).Handler()

	assert.Equal(t, http.StatusOK, get(h, "/api/categories").Code)
	assert.Equal(t, http.StatusOK, get(h, "/api/categories").Code)
	limited := get(h, "/api/categories")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, get(h, "/healthz").Code)
}

func TestRateLimit_ForwardedHeaders(t *testing.T) {
	config.Set("RATE_LIMIT_PER_MINUTE", "1")
	t.Cleanup(func() {
		config.Set("RATE_LIMIT_PER_MINUTE", "120")
		config.Set("TRUST_PROXY", "false")
	})

	t.Run("ignored by default", func(t *testing.T) {
		config.Set("TRUST_PROXY", "false")
		h := newKernel(t).Handler()

		assert.Equal(t, http.StatusOK, getFrom(h, "/api/categories", "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, getFrom(h, "/api/categories", "10.0.0.2").Code)
	})

	t.Run("honored behind a trusted proxy", func(t *testing.T) {
		config.Set("TRUST_PROXY", "true")
		h := newKernel(t).Handler()

		assert.Equal(t, http.StatusOK, getFrom(h, "/api/categories", "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, getFrom(h, "/api/categories", "10.0.0.2").Code)
		assert.Equal(t, http.StatusTooManyRequests, getFrom(h, "/api/categories", "10.0.0.1").Code)
	})
}

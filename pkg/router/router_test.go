package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coconina/storefront/pkg/router"
)

func TestGroup_NamedRoutesAndURL(t *testing.T) {
	r := router.New()
	api := r.Group("/api/")
	api.Get("/products/{id}", "products.show", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(req, "id")))
	})
	api.Post("contact", "contact.submit", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	path, ok := r.Path("products.show")
	require.True(t, ok)
	assert.Equal(t, "/api/products/{id}", path)

	url, err := r.URL("products.show", map[string]string{"id": "origins-rg-002"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/origins-rg-002", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err)
	_, err = r.URL("nope", nil)
	assert.Error(t, err)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, "origins-rg-002", rec.Body.String())

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRoutes_IncludesUnnamed(t *testing.T) {
	r := router.New()
	r.Get("/healthz", "", func(http.ResponseWriter, *http.Request) {})
	r.Handle(http.MethodGet, "/metrics", "metrics", http.NotFoundHandler())

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/healthz"},
		{Method: http.MethodGet, Path: "/metrics", Name: "metrics"},
	}, r.Routes())
}

func TestGroup_MiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := router.New()
	g := r.Group("/api", mw("group")).Group("/v1", mw("nested"))
	g.Get("/ping", "", func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }, mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, []string{"group", "nested", "route", "handler"}, order)
}

func TestNotFoundHandler(t *testing.T) {
	r := router.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

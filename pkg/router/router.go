// Package router wraps chi with named routes and prefix groups.
//
//	r := router.New()
//	api := r.Group("/api")
//	api.Get("/products/{id}", "products.show", c.Show)
//	url, _ := r.URL("products.show", map[string]string{"id": "origins-br-001"})
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	names  map[string]string
	routes []RouteInfo
}

type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func New() *Router {
	return &Router{
		mux:   chi.NewRouter(),
		names: make(map[string]string),
	}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// Use appends global middleware. chi requires this before any route is
// mounted.
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// NotFound sets the handler for unmatched paths.
func (r *Router) NotFound(h http.HandlerFunc) {
	r.mux.NotFound(h)
}

// MethodNotAllowed sets the handler for a known path with the wrong method.
func (r *Router) MethodNotAllowed(h http.HandlerFunc) {
	r.mux.MethodNotAllowed(h)
}

func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

func (r *Router) Get(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodGet, normalizePath(path), name, handler, middlewares...)
}

func (r *Router) Post(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodPost, normalizePath(path), name, handler, middlewares...)
}

// Handle mounts any http.Handler, e.g. the Prometheus or GraphQL handlers.
func (r *Router) Handle(method, path, name string, handler http.Handler, middlewares ...Middleware) {
	r.mount(method, normalizePath(path), name, handler, middlewares...)
}

func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.names[name]
	return path, ok
}

func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}

	return path, nil
}

// Routes returns every registered route in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.routes...)
}

func (r *Router) mount(method, fullPath, name string, handler http.Handler, middlewares ...Middleware) {
	r.mux.Method(method, fullPath, chain(handler, middlewares...))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, RouteInfo{Method: method, Path: fullPath, Name: name})
	if name != "" {
		r.names[name] = fullPath
	}
}

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: append(append([]Middleware(nil), g.middlewares...), middlewares...),
	}
}

func (g *Group) Get(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodGet, path, name, handler, middlewares...)
}

func (g *Group) Post(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodPost, path, name, handler, middlewares...)
}

func (g *Group) Handle(method, path, name string, handler http.Handler, middlewares ...Middleware) {
	g.mount(method, path, name, handler, middlewares...)
}

func (g *Group) mount(method, path, name string, handler http.Handler, middlewares ...Middleware) {
	combined := append(append([]Middleware(nil), g.middlewares...), middlewares...)
	g.router.mount(method, joinPath(g.prefix, path), name, handler, combined...)
}

func chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func joinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.Trim(part, "/")
		if trimmed != "" {
			segments = append(segments, trimmed)
		}
	}

	if len(segments) == 0 {
		return "/"
	}

	return "/" + strings.Join(segments, "/")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return joinPath(path)
}

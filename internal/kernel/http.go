// Package kernel assembles the storefront HTTP handler: the global
// middleware stack, the API routes and the operational endpoints.
package kernel

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/coconina/storefront/app/controllers"
	"github.com/coconina/storefront/app/inquiry"
	"github.com/coconina/storefront/app/routes"
	"github.com/coconina/storefront/app/services"
	"github.com/coconina/storefront/config"
	"github.com/coconina/storefront/pkg/logger"
	"github.com/coconina/storefront/pkg/metrics"
	"github.com/coconina/storefront/pkg/middleware"
	"github.com/coconina/storefront/pkg/reqid"
	"github.com/coconina/storefront/pkg/response"
	"github.com/coconina/storefront/pkg/router"
)

// Health is the /healthz payload.
type Health struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
	Cache  string `json:"cache"`
}

// HTTPKernel owns the router, the rate limiter so the server can sweep it,
// and the shared contact modal flag.
type HTTPKernel struct {
	Router  *router.Router
	Limiter *middleware.Limiter
	Inquiry *inquiry.Modal
	gateway *services.Gateway
	cache   string
}

// NewHTTPKernel builds the handler over gw. cacheDriver is reported by
// /healthz.
func NewHTTPKernel(gw *services.Gateway, lc controllers.LinkConfig, cacheDriver string) (*HTTPKernel, error) {
	k := &HTTPKernel{
		Router:  router.New(),
		Limiter: middleware.NewLimiter(rateLimit(), time.Minute),
		Inquiry: inquiry.NewModal(),
		gateway: gw,
		cache:   cacheDriver,
	}
	r := k.Router

	k.Inquiry.Subscribe(func(open bool) {
		logger.Debug("inquiry: modal toggled", "open", open)
	})

	// Outermost first: metrics sees total latency, Recovery must wrap the
	// logger, and the request id exists before anything logs. RealIP runs
	// only behind a trusted proxy; otherwise forwarded headers are ignored.
	if config.TrustProxy() {
		r.Use(chimw.RealIP)
	}
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", k.health)

	if err := routes.RegisterAPI(r, gw, lc, k.Inquiry, k.Limiter.Middleware); err != nil {
		return nil, err
	}
	return k, nil
}

// Handler returns the root http.Handler.
func (k *HTTPKernel) Handler() http.Handler {
	return k.Router.Handler()
}

func (k *HTTPKernel) health(w http.ResponseWriter, _ *http.Request) {
	mode := "fixtures"
	if k.gateway.IsConfigured() {
		mode = "remote"
	}
	response.Success(w, Health{Status: "ok", Mode: mode, Cache: k.cache})
}

func rateLimit() int {
	n, err := strconv.Atoi(config.Get("RATE_LIMIT_PER_MINUTE", "120"))
	if err != nil || n < 0 {
		return 120
	}
	return n
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/coconina/storefront/pkg/logger"
	"github.com/coconina/storefront/pkg/metrics"
	"github.com/coconina/storefront/pkg/response"
)

// Recovery turns a handler panic into a logged stack trace and a 500
// envelope.
//
//	r.Use(metrics.Middleware())
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Recovery)
//	r.Use(middleware.Logger)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			metrics.Panics.Inc()
			logger.WithCtx(r.Context()).Error("panic recovered",
				"error", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}

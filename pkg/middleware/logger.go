package middleware

import (
	"net/http"
	"time"

	"github.com/coconina/storefront/pkg/logger"
	"github.com/coconina/storefront/pkg/reqid"
)

// responseWriter captures the status code and byte count.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Logger logs each request and injects a request-scoped logger tagged with
// request_id. reqid.Middleware must run first.
//
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Logger)
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := logger.L.With("request_id", reqid.FromCtx(r.Context()))
		r = r.WithContext(logger.InjectLogger(r.Context(), reqLog))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		level := logger.LevelFor(rw.statusCode)
		reqLog.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"bytes", rw.bytes,
			"duration", time.Since(start).String(),
			"ip", clientIP(r),
		)
	})
}

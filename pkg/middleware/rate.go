// Package middleware provides the HTTP middleware stack of the storefront API.
package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coconina/storefront/pkg/metrics"
	"github.com/coconina/storefront/pkg/response"
)

// bucket tracks a fixed-window request count for one client.
type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per client IP in fixed windows.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter allows max requests per window for each client.
func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		buckets: map[string]*bucket{},
	}
}

// Allow records one request from key and reports whether it fits the window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}
	b.count++
	return b.count <= l.max
}

// Sweep drops expired buckets. Called periodically by the server.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, k)
		}
	}
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Middleware rejects requests over the limit with 429. A non-positive max
// disables limiting.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	if l.max <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			metrics.RateLimited.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the peer address without the port. Forwarded headers are
// ignored here; behind a trusted proxy the kernel installs RealIP, which
// rewrites RemoteAddr before this runs.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Package http is the fluent outgoing HTTP client used to talk to the
// catalog API.
//
// Usage:
//
//	resp, err := http.Get(base + "/public/products").
//	    WithContext(ctx).
//	    Timeout(10 * time.Second).
//	    Send()
//
//	var products []models.Product
//	err = resp.JSON(&products)
//
//	// POST JSON body
//	resp, err := http.Post(base + "/api/contact").
//	    Body(payload).
//	    Send()
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	gohttp "net/http"
	"time"

	"github.com/coconina/storefront/pkg/logger"
)

// defaultTransport is the pooled transport used in production. Tests swap
// DefaultClient.Transport to intercept calls.
var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        50,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient is the shared client for every outgoing request.
//
//	http.DefaultClient.Transport = mock
//	defer http.ResetTransport()
var DefaultClient = &gohttp.Client{
	Transport: defaultTransport,
}

// ResetTransport restores the production transport on DefaultClient.
func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// UserAgent identifies the storefront to the catalog API.
const UserAgent = "coconina-storefront"

// DefaultTimeout bounds a single attempt unless Timeout overrides it.
const DefaultTimeout = 10 * time.Second

// ------------------- Request -------------------

// Request is a fluent HTTP request builder.
type Request struct {
	method    string
	url       string
	headers   map[string]string
	body      interface{}
	timeout   time.Duration
	retries   int
	retryWait time.Duration
	ctx       context.Context
}

// Get starts a GET request.
func Get(url string) *Request { return newRequest(gohttp.MethodGet, url) }

// Post starts a POST request.
func Post(url string) *Request { return newRequest(gohttp.MethodPost, url) }

func newRequest(method, url string) *Request {
	return &Request{
		method:    method,
		url:       url,
		headers:   map[string]string{"Accept": "application/json", "User-Agent": UserAgent},
		timeout:   DefaultTimeout,
		retries:   1,
		retryWait: 500 * time.Millisecond,
		ctx:       context.Background(),
	}
}

// Header adds a single header to the request.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Body sets the request body. v is marshalled to JSON unless it is a
// string or []byte.
func (r *Request) Body(v interface{}) *Request {
	r.body = v
	return r
}

// Timeout sets the per-attempt timeout. Zero keeps the default.
func (r *Request) Timeout(d time.Duration) *Request {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Retry configures automatic retries on transport failure.
// n is total attempts (1 = no retry), wait is the initial backoff (doubles each attempt).
func (r *Request) Retry(n int, wait time.Duration) *Request {
	if n < 1 {
		n = 1
	}
	r.retries = n
	r.retryWait = wait
	return r
}

// WithContext sets the parent context; cancelling it aborts the call.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx != nil {
		r.ctx = ctx
	}
	return r
}

// ------------------- Send -------------------

// Send executes the request. A non-2xx status is not an error here; call
// Throw or OK on the Response.
func (r *Request) Send() (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= r.retries; attempt++ {
		resp, err := r.do()
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt < r.retries {
			backoff := time.Duration(float64(r.retryWait) * math.Pow(2, float64(attempt-1)))
			logger.WithCtx(r.ctx).Warn("http: request failed, retrying",
				"url", r.url, "attempt", attempt, "backoff", backoff, "error", err)

			select {
			case <-r.ctx.Done():
				return nil, fmt.Errorf("http: %s %s: %w", r.method, r.url, r.ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	if r.retries == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("http: all %d attempts failed for %s %s: %w", r.retries, r.method, r.url, lastErr)
}

func (r *Request) do() (*Response, error) {
	body, ct, err := r.buildBody()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: send %s %s: %w", r.method, r.url, err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Headers:    resp.Header,
		Raw:        raw,
	}, nil
}

func (r *Request) buildBody() (io.Reader, string, error) {
	if r.body == nil {
		return nil, "", nil
	}
	switch v := r.body.(type) {
	case string:
		return bytes.NewBufferString(v), "text/plain", nil
	case []byte:
		return bytes.NewReader(v), "application/octet-stream", nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("http: marshal body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

// statusText returns the reason phrase without the numeric code.
func statusText(resp *gohttp.Response) string {
	if t := gohttp.StatusText(resp.StatusCode); t != "" {
		return t
	}
	return resp.Status
}

// ------------------- Response -------------------

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Headers    gohttp.Header
	Raw        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the response body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

// Message returns the "message" field of a JSON object body, or "" when
// the body is not such an object. The catalog API reports both success and
// failure text this way.
func (r *Response) Message() string {
	var body struct {
		Message string `json:"message"`
	}
	if r.JSON(&body) != nil {
		return ""
	}
	return body.Message
}

// StatusError is returned by Throw for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http: request failed with status %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// Throw returns a *StatusError if the response status is not 2xx.
func (r *Response) Throw() error {
	if !r.OK() {
		return &StatusError{StatusCode: r.StatusCode, Status: r.Status, Body: string(r.Raw)}
	}
	return nil
}

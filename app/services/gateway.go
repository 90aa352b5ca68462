package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coconina/storefront/app/catalog"
	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/config"
	"github.com/coconina/storefront/pkg/cache"
	apihttp "github.com/coconina/storefront/pkg/http"
	"github.com/coconina/storefront/pkg/logger"
	"github.com/coconina/storefront/pkg/metrics"
	"github.com/coconina/storefront/pkg/reqid"
)

const (
	productsKey      = "catalog:products"
	productKeyPrefix = "catalog:product:"

	mockContactMessage    = "Form submitted (mock mode)"
	defaultContactMessage = "Form submitted successfully"
)

// Fallback reasons, used as the "reason" metric label.
const (
	reasonUnconfigured = "unconfigured"
	reasonTransport    = "transport"
	reasonStatus       = "status"
	reasonDecode       = "decode"
	reasonNotFound     = "not_found"
)

var errUnexpectedShape = errors.New("unexpected response shape")

// SubmitError is returned by SubmitContact when the API rejects a
// submission. Message is the server-provided text when there was one.
type SubmitError struct {
	StatusCode int
	Message    string
}

func (e *SubmitError) Error() string {
	return e.Message
}

// Gateway reads the catalog from the remote API and falls back to the
// bundled fixtures whenever the API is unset or a read fails. Reads never
// return errors; only SubmitContact does.
type Gateway struct {
	baseURL    string
	timeout    time.Duration
	revalidate time.Duration
	cache      cache.Store
	warmers    int
	attempts   int
	retryWait  time.Duration
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCache stores successful remote reads in s for the revalidate window.
func WithCache(s cache.Store) Option {
	return func(g *Gateway) { g.cache = s }
}

// WithRevalidate sets how long remote reads are served from cache.
func WithRevalidate(d time.Duration) Option {
	return func(g *Gateway) { g.revalidate = d }
}

// WithTimeout bounds each remote call.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithReadAttempts retries catalog reads on transport failure, waiting
// wait before the second attempt and doubling after that.
func WithReadAttempts(n int, wait time.Duration) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.attempts = n
			g.retryWait = wait
		}
	}
}

// WithWarmers sets how many product details Warm fetches concurrently.
func WithWarmers(n int) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.warmers = n
		}
	}
}

// NewGateway returns a gateway for the API at baseURL. An empty baseURL
// puts it in fixture mode.
func NewGateway(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    trimBase(baseURL),
		timeout:    apihttp.DefaultTimeout,
		revalidate: 60 * time.Second,
		warmers:    4,
		attempts:   1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGatewayFromConfig builds a gateway from API_BASE_URL,
// API_TIMEOUT_SECONDS, API_READ_ATTEMPTS and REVALIDATE_SECONDS.
func NewGatewayFromConfig(store cache.Store) *Gateway {
	return NewGateway(config.APIBaseURL(),
		WithCache(store),
		WithTimeout(config.APITimeout()),
		WithRevalidate(config.Revalidate()),
		WithReadAttempts(config.APIReadAttempts(), 250*time.Millisecond),
	)
}

// IsConfigured reports whether a remote API base URL is set.
func (g *Gateway) IsConfigured() bool {
	return g.baseURL != ""
}

// BaseURL returns the configured API base URL, or "".
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// FetchProducts returns the remote product list, or the fixtures when the
// API is unset or the call fails.
func (g *Gateway) FetchProducts(ctx context.Context) []models.Product {
	const op = "Gateway.FetchProducts"
	log := logger.WithCtx(ctx).With("op", op)

	if !g.IsConfigured() {
		log.Debug("api not configured, serving fixtures")
		metrics.RecordFallback(op, reasonUnconfigured)
		return catalog.Products()
	}

	var cached []models.Product
	if g.cache != nil && g.cache.Get(ctx, productsKey, &cached) {
		return cached
	}

	resp, reason, err := g.get(ctx, op, "/public/products")
	if err != nil {
		log.Warn("fetch failed, serving fixtures", "reason", reason, "error", err)
		metrics.RecordFallback(op, reason)
		return catalog.Products()
	}

	products, err := decodeProducts(resp.Raw)
	if err != nil {
		log.Warn("unexpected response, serving fixtures", "reason", reasonDecode, "error", err)
		metrics.RecordFallback(op, reasonDecode)
		return catalog.Products()
	}

	g.store(ctx, productsKey, products)
	return products
}

// FetchProductsByCategory filters FetchProducts by category. "" and "all"
// return the full list in order.
func (g *Gateway) FetchProductsByCategory(ctx context.Context, category string) []models.Product {
	return catalog.FilterByCategory(g.FetchProducts(ctx), category)
}

// FetchProductByID returns one product. Remote misses and failures fall
// back to the fixtures; false means no product has that id anywhere.
func (g *Gateway) FetchProductByID(ctx context.Context, id string) (models.Product, bool) {
	const op = "Gateway.FetchProductByID"
	log := logger.WithCtx(ctx).With("op", op, "id", id)

	if !g.IsConfigured() {
		metrics.RecordFallback(op, reasonUnconfigured)
		return catalog.ByID(id)
	}

	key := productKeyPrefix + id
	var cached models.Product
	if g.cache != nil && g.cache.Get(ctx, key, &cached) {
		return cached, true
	}

	p, reason, err := g.fetchProduct(ctx, op, id)
	if err != nil {
		log.Warn("fetch failed, using fixtures", "reason", reason, "error", err)
		metrics.RecordFallback(op, reason)
		return catalog.ByID(id)
	}

	g.store(ctx, key, p)
	return p, true
}

func (g *Gateway) fetchProduct(ctx context.Context, op, id string) (models.Product, string, error) {
	resp, reason, err := g.get(ctx, op, "/public/products/"+url.PathEscape(id))
	if err != nil {
		return models.Product{}, reason, err
	}

	p, found, err := decodeProduct(resp.Raw)
	if err != nil {
		return models.Product{}, reasonDecode, err
	}
	if !found {
		return models.Product{}, reasonNotFound, fmt.Errorf("%s: product %q: empty data", op, id)
	}
	return p, "", nil
}

// FetchCategories returns the fixture categories. The remote categories
// endpoint is reserved and not called yet.
func (g *Gateway) FetchCategories(_ context.Context) []models.Category {
	return catalog.Categories()
}

// SubmitContact relays an inquiry to the API. Without an API it succeeds in
// mock mode without any network call. Failures are returned, never hidden.
func (g *Gateway) SubmitContact(ctx context.Context, form models.ContactForm) (models.ContactResult, error) {
	const op = "Gateway.SubmitContact"
	log := logger.WithCtx(ctx).With("op", op)

	if !g.IsConfigured() {
		log.Warn("api not configured, contact submission skipped")
		return models.ContactResult{Success: true, Message: mockContactMessage}, nil
	}

	payload := contactPayload{
		FullName:       form.Name,
		Email:          form.Email,
		WhatsAppNumber: form.WhatsApp,
		Message:        form.Message,
	}

	outcome := "error"
	defer metrics.ObserveGateway(op, time.Now(), &outcome)

	resp, err := g.request(ctx, apihttp.Post(g.baseURL+"/api/contact").Body(payload))
	if err != nil {
		log.Error("contact submission failed", "error", err)
		return models.ContactResult{}, fmt.Errorf("%s: %w", op, err)
	}

	msg := resp.Message()
	if !resp.OK() {
		outcome = "status"
		if msg == "" {
			msg = "failed to submit form: " + resp.Status
		}
		log.Error("contact submission rejected", "status", resp.StatusCode, "message", msg)
		return models.ContactResult{}, &SubmitError{StatusCode: resp.StatusCode, Message: msg}
	}

	outcome = "ok"
	if msg == "" {
		msg = defaultContactMessage
	}
	log.Info("contact submitted")
	return models.ContactResult{Success: true, Message: msg}, nil
}

// Invalidate drops cached remote reads so the next call refetches.
func (g *Gateway) Invalidate(ctx context.Context, ids ...string) error {
	if g.cache == nil {
		return nil
	}
	keys := []string{productsKey}
	for _, id := range ids {
		keys = append(keys, productKeyPrefix+id)
	}
	return g.cache.Del(ctx, keys...)
}

type contactPayload struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	WhatsAppNumber string `json:"whatsappNumber"`
	Message        string `json:"message"`
}

// ─── Internals ────────────────────────────────────────────────────────────────

// get performs a GET and returns the fallback reason alongside any error.
func (g *Gateway) get(ctx context.Context, op, path string) (*apihttp.Response, string, error) {
	outcome := "error"
	defer metrics.ObserveGateway(op, time.Now(), &outcome)

	resp, err := g.request(ctx, apihttp.Get(g.baseURL+path).Retry(g.attempts, g.retryWait))
	if err != nil {
		return nil, reasonTransport, fmt.Errorf("%s: %w", op, err)
	}
	if err := resp.Throw(); err != nil {
		outcome = "status"
		if resp.StatusCode == http.StatusNotFound {
			return nil, reasonNotFound, fmt.Errorf("%s: %w", op, err)
		}
		return nil, reasonStatus, fmt.Errorf("%s: %w", op, err)
	}
	outcome = "ok"
	return resp, "", nil
}

func (g *Gateway) request(ctx context.Context, req *apihttp.Request) (*apihttp.Response, error) {
	req = req.WithContext(ctx).Timeout(g.timeout)
	if id := reqid.FromCtx(ctx); id != "" {
		req = req.Header(reqid.Header, id)
	}
	return req.Send()
}

func (g *Gateway) store(ctx context.Context, key string, v interface{}) {
	if g.cache == nil || g.revalidate <= 0 {
		return
	}
	if err := g.cache.Set(ctx, key, v, g.revalidate); err != nil {
		logger.WithCtx(ctx).Warn("cache write failed", "key", key, "error", err)
	}
}

// decodeProducts accepts a bare array or an object with a data array.
func decodeProducts(raw []byte) ([]models.Product, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errUnexpectedShape
	}

	if raw[0] != '[' {
		data, ok, err := envelopeData(raw)
		if err != nil {
			return nil, err
		}
		if !ok || isNull(data) {
			return nil, errUnexpectedShape
		}
		raw = data
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnexpectedShape, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// decodeProduct accepts a bare product or an object with a data product.
// found is false for a null or missing product.
func decodeProduct(raw []byte) (p models.Product, found bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return p, false, nil
	}
	if raw[0] != '{' {
		return p, false, errUnexpectedShape
	}

	if data, ok, err := envelopeData(raw); err != nil {
		return p, false, err
	} else if ok {
		if isNull(data) {
			return p, false, nil
		}
		raw = data
	}

	if err := json.Unmarshal(raw, &p); err != nil {
		return p, false, fmt.Errorf("%w: %v", errUnexpectedShape, err)
	}
	if p.ID == "" {
		return p, false, errUnexpectedShape
	}
	return p, true, nil
}

// envelopeData returns the "data" member of a JSON object, if present.
func envelopeData(raw []byte) (json.RawMessage, bool, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("%w: %v", errUnexpectedShape, err)
	}
	data, ok := env["data"]
	return data, ok, nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func trimBase(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}

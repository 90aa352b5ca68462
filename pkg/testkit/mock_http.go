package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	apihttp "github.com/coconina/storefront/pkg/http"
)

// ─── MockTransport ────────────────────────────────────────────────────────────

// MockTransport implements http.RoundTripper. It answers outgoing requests
// from registered stubs and records every call, so tests can assert both
// what was sent and that nothing was sent at all.
//
//	mt := testkit.NewMockTransport()
//	mt.On("GET", "https://api.test/public/products").ReplyJSON(200, products)
//	mt.Install(t)
//	// ... run code under test ...
//	assert.Equal(t, 1, mt.Calls())
type MockTransport struct {
	mu       sync.Mutex
	stubs    []*Stub
	requests []RecordedRequest
}

// Stub is one canned answer, matched by method and URL prefix.
type Stub struct {
	mt        *MockTransport
	method    string
	urlPrefix string
	status    int
	body      []byte
	err       error
	hits      int
}

// RecordedRequest is a captured outgoing call.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// NewMockTransport returns a transport with no stubs; every call fails
// until one is registered.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Install swaps the shared outgoing client onto mt for the duration of t.
func (mt *MockTransport) Install(t testing.TB) *MockTransport {
	t.Helper()
	apihttp.DefaultClient.Transport = mt
	t.Cleanup(apihttp.ResetTransport)
	return mt
}

// On registers a stub. An empty method matches any method. Later stubs are
// tried first so a test can override a default.
func (mt *MockTransport) On(method, urlPrefix string) *Stub {
	s := &Stub{mt: mt, method: strings.ToUpper(method), urlPrefix: urlPrefix, status: http.StatusOK}
	mt.mu.Lock()
	mt.stubs = append(mt.stubs, s)
	mt.mu.Unlock()
	return s
}

// Reply answers with status and a raw body.
func (s *Stub) Reply(status int, body string) *Stub {
	s.status = status
	s.body = []byte(body)
	return s
}

// ReplyJSON answers with status and v encoded as JSON.
func (s *Stub) ReplyJSON(status int, v interface{}) *Stub {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testkit: marshal stub body: %v", err))
	}
	s.status = status
	s.body = b
	return s
}

// Fail makes the call return err as a transport failure.
func (s *Stub) Fail(err error) *Stub {
	s.err = err
	return s
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.requests = append(mt.requests, RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	})

	for i := len(mt.stubs) - 1; i >= 0; i-- {
		s := mt.stubs[i]
		if s.method != "" && s.method != req.Method {
			continue
		}
		if !strings.HasPrefix(req.URL.String(), s.urlPrefix) {
			continue
		}
		s.hits++
		if s.err != nil {
			return nil, s.err
		}
		return buildHTTPResponse(req, s.status, s.body), nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call %s %s: no matching stub", req.Method, req.URL)
}

// Calls returns the number of outgoing requests seen.
func (mt *MockTransport) Calls() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return len(mt.requests)
}

// Requests returns a copy of every recorded request in order.
func (mt *MockTransport) Requests() []RecordedRequest {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	out := make([]RecordedRequest, len(mt.requests))
	copy(out, mt.requests)
	return out
}

// Hits returns how often the stub answered.
func (s *Stub) Hits() int {
	s.mt.mu.Lock()
	defer s.mt.mu.Unlock()
	return s.hits
}

// AssertAllCalled returns one error per stub that never matched.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, s := range mt.stubs {
		if s.hits == 0 {
			errs = append(errs, fmt.Errorf("testkit: stub %s %q was never called", s.method, s.urlPrefix))
		}
	}
	return errs
}

func buildHTTPResponse(req *http.Request, code int, body []byte) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}
}

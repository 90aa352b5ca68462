package testkit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the JSON body written by pkg/response, with Data kept
// raw so each test decodes it into the type it expects.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    json.RawMessage   `json:"meta"`
	Errors  map[string]string `json:"errors"`
}

// DecodeEnvelope checks the status code and decodes the response envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantCode int) Envelope {
	t.Helper()

	require.Equal(t, wantCode, rec.Code, "HTTP status code mismatch\nbody: %s", rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "response is not a JSON envelope\nbody: %s", rec.Body.String())
	assert.Equal(t, wantCode, env.Status, "envelope status mismatch")
	return env
}

// DecodeData decodes the envelope's data field into dest.
func DecodeData(t *testing.T, env Envelope, dest interface{}) {
	t.Helper()
	require.NotEmpty(t, env.Data, "envelope has no data")
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

// AssertJSONBody deep-compares two JSON documents after normalising both
// through unmarshal, so key order and whitespace never matter.
func AssertJSONBody(t *testing.T, expected, actual []byte) {
	t.Helper()

	var expVal, actVal interface{}
	require.NoError(t, json.Unmarshal(expected, &expVal), "expected value is not valid JSON")
	if !assert.NoError(t, json.Unmarshal(actual, &actVal), "actual value is not valid JSON\nbody: %s", string(actual)) {
		return
	}
	assert.Equal(t, expVal, actVal, "JSON body mismatch")
}

// AssertStubsCalled fails the test for every stub that never matched.
func AssertStubsCalled(t *testing.T, mt *MockTransport) {
	t.Helper()
	for _, err := range mt.AssertAllCalled() {
		assert.NoError(t, err)
	}
}

package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coconina/storefront/pkg/response"
)

func TestWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithMeta(rec, []string{"a"}, map[string]int{"count": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":200,"data":["a"],"meta":{"count":1}}`, rec.Body.String())
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"email": "email must be a valid email address"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"status":422,"message":"Validation failed","errors":{"email":"email must be a valid email address"}}`, rec.Body.String())
}

func TestBadGateway(t *testing.T) {
	rec := httptest.NewRecorder()
	response.BadGateway(rec, "upstream down")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"status":502,"message":"upstream down"}`, rec.Body.String())
}

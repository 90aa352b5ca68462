// Package response writes the JSON envelope every storefront endpoint uses:
//
//	{"status":200,"message":"...","data":...,"meta":...,"errors":{...}}
package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// WithMeta sends a 200 with data plus a meta object (counts, labels).
func WithMeta(w http.ResponseWriter, data, meta interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data, Meta: meta})
}

// Message sends status with a message and optional data.
func Message(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, status, envelope{Status: status, Message: message, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// BadRequest sends a 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// BadGateway sends a 502 for failures of the upstream catalog API.
func BadGateway(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadGateway, message)
}

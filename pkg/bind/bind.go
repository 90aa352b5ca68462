// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coconina/storefront/config"
	"github.com/coconina/storefront/pkg/validate"
)

// MaxBodyBytes returns the configured request body size limit (default 64 KB).
func MaxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "65536"), 10, 64)
	if err != nil || n <= 0 {
		return 64 << 10
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) (errs map[string]string, err error) {
	if r.Body == nil {
		return nil, errors.New("empty request body")
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// Package sku formats, parses and validates product SKUs.
//
// A SKU has five hyphen-separated segments:
//
//	BRAND-CREATOR-DATECODE-CATCODE-SEQ
//	COCO-NINA-DIC25-BR-001
//
// DATECODE is a Spanish month abbreviation plus a two-digit year, CATCODE the
// fixed two-letter category code and SEQ a zero-padded three-digit sequence.
package sku

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/coconina/storefront/app/models"
)

// DefaultBrand is used when Options.Brand is empty.
const DefaultBrand = "COCO"

// MaxSequence is the largest sequence the three-digit field can hold.
const MaxSequence = 999

const segments = 5

var (
	// ErrUnknownCategory is returned for a category outside the code table.
	ErrUnknownCategory = errors.New("sku: unknown category")

	// ErrSequenceOutOfRange is returned when the sequence does not fit in
	// three digits.
	ErrSequenceOutOfRange = errors.New("sku: sequence out of range")

	// ErrInvalidSegment is returned when brand or creator is not uppercase
	// letters, or the collection date not uppercase letters and digits.
	// Generate never emits a SKU that IsValid rejects.
	ErrInvalidSegment = errors.New("sku: invalid segment")

	// ErrMalformed wraps every Parse failure.
	ErrMalformed = errors.New("sku: malformed")
)

var categoryCodes = map[models.ProductCategory]string{
	models.Bracelets: "BR",
	models.Necklaces: "NK",
	models.Rings:     "RG",
	models.Earrings:  "ER",
}

var months = [12]string{"ENE", "FEB", "MAR", "ABR", "MAY", "JUN", "JUL", "AGO", "SEP", "OCT", "NOV", "DIC"}

var (
	pattern = regexp.MustCompile(`^[A-Z]+-[A-Z]+-[A-Z0-9]+-[A-Z]{2}-\d{3}$`)
	letters = regexp.MustCompile(`^[A-Z]+$`)
	alnum   = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// Options describes the SKU to build.
type Options struct {
	Brand          string
	Creator        string
	CollectionDate string
	Category       models.ProductCategory
	SequenceNumber int
}

// Parts is the decoded form of a SKU.
type Parts struct {
	Brand          string `json:"brand"`
	Creator        string `json:"creator"`
	CollectionDate string `json:"collectionDate"`
	CategoryCode   string `json:"categoryCode"`
	SequenceNumber int    `json:"sequenceNumber"`
}

// Generate formats a SKU from opts.
func Generate(opts Options) (string, error) {
	code, ok := CategoryCode(opts.Category)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, opts.Category)
	}
	if opts.SequenceNumber < 0 || opts.SequenceNumber > MaxSequence {
		return "", fmt.Errorf("%w: %d (want 0..%d)", ErrSequenceOutOfRange, opts.SequenceNumber, MaxSequence)
	}

	brand := opts.Brand
	if brand == "" {
		brand = DefaultBrand
	}
	for _, seg := range []struct {
		name, value string
		re          *regexp.Regexp
	}{
		{"brand", brand, letters},
		{"creator", opts.Creator, letters},
		{"collection date", opts.CollectionDate, alnum},
	} {
		if !seg.re.MatchString(seg.value) {
			return "", fmt.Errorf("%w: %s %q", ErrInvalidSegment, seg.name, seg.value)
		}
	}

	return fmt.Sprintf("%s-%s-%s-%s-%03d", brand, opts.Creator, opts.CollectionDate, code, opts.SequenceNumber), nil
}

// MustGenerate is Generate for static data; it panics on error.
func MustGenerate(opts Options) string {
	s, err := Generate(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse splits a SKU into its parts. It checks the segment count and that
// the sequence is numeric; use IsValid for the full format check.
func Parse(s string) (Parts, error) {
	parts := strings.Split(s, "-")
	if len(parts) != segments {
		return Parts{}, fmt.Errorf("%w: %q has %d segments, want %d", ErrMalformed, s, len(parts), segments)
	}

	seq, err := strconv.Atoi(parts[4])
	if err != nil {
		return Parts{}, fmt.Errorf("%w: %q has non-numeric sequence %q", ErrMalformed, s, parts[4])
	}

	return Parts{
		Brand:          parts[0],
		Creator:        parts[1],
		CollectionDate: parts[2],
		CategoryCode:   parts[3],
		SequenceNumber: seq,
	}, nil
}

// IsValid reports whether s matches the SKU pattern. The category code is
// not checked against the known codes.
func IsValid(s string) bool {
	return pattern.MatchString(s)
}

// DateCode returns the collection code for t, e.g. "DIC25" for December 2025.
func DateCode(t time.Time) string {
	return fmt.Sprintf("%s%02d", months[t.Month()-1], t.Year()%100)
}

// CategoryCode returns the two-letter code for c.
func CategoryCode(c models.ProductCategory) (string, bool) {
	code, ok := categoryCodes[c]
	return code, ok
}

// CategoryForCode is the reverse of CategoryCode.
func CategoryForCode(code string) (models.ProductCategory, bool) {
	for c, cc := range categoryCodes {
		if cc == code {
			return c, true
		}
	}
	return "", false
}

// NextSequenceNumber returns the next free sequence for category, counting
// the products already in it.
func NextSequenceNumber(products []models.Product, category models.ProductCategory) int {
	n := 0
	for _, p := range products {
		if p.Category == category {
			n++
		}
	}
	return n + 1
}

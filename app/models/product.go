package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Prices travel as JSON numbers, matching the remote API and the web client.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductCategory is one of the four jewelry lines.
type ProductCategory string

const (
	Bracelets ProductCategory = "bracelets"
	Necklaces ProductCategory = "necklaces"
	Rings     ProductCategory = "rings"
	Earrings  ProductCategory = "earrings"
)

// AllCategories lists the categories in catalog order.
var AllCategories = []ProductCategory{Bracelets, Necklaces, Rings, Earrings}

// ParseCategory converts a slug into a ProductCategory.
func ParseCategory(s string) (ProductCategory, error) {
	c := ProductCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown product category %q", s)
	}
	return c, nil
}

func (c ProductCategory) Valid() bool {
	switch c {
	case Bracelets, Necklaces, Rings, Earrings:
		return true
	}
	return false
}

// DisplayName capitalizes the slug: "bracelets" -> "Bracelets".
func (c ProductCategory) DisplayName() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c ProductCategory) String() string { return string(c) }

// UnmarshalJSON rejects values outside the enum so a malformed remote
// payload fails decoding instead of leaking into the catalog.
func (c *ProductCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("product category: %w", err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Image is a picture reference with its alt text.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Product is a catalog entry. Values are never mutated after construction;
// helpers that need a variant return a copy.
type Product struct {
	ID               string           `json:"id"`
	SKU              string           `json:"sku,omitempty"`
	Name             string           `json:"name"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Category         ProductCategory  `json:"category"`
	ShortDescription string           `json:"shortDescription"`
	FullDescription  string           `json:"fullDescription,omitempty"`
	Materials        []string         `json:"materials"`
	Techniques       []string         `json:"techniques"`
	Tags             []string         `json:"tags"`
	Image            Image            `json:"image"`
	Gallery          []string         `json:"gallery,omitempty"`
	Stock            *int             `json:"stock,omitempty"`
	Available        *bool            `json:"available,omitempty"`
}

// Clone returns a deep copy so callers cannot alias fixture slices.
func (p Product) Clone() Product {
	out := p
	out.Materials = cloneStrings(p.Materials)
	out.Techniques = cloneStrings(p.Techniques)
	out.Tags = cloneStrings(p.Tags)
	out.Gallery = cloneStrings(p.Gallery)
	if p.Price != nil {
		v := *p.Price
		out.Price = &v
	}
	if p.Stock != nil {
		v := *p.Stock
		out.Stock = &v
	}
	if p.Available != nil {
		v := *p.Available
		out.Available = &v
	}
	return out
}

// InStock reports availability. Unknown availability counts as in stock.
func (p Product) InStock() bool {
	if p.Available != nil && !*p.Available {
		return false
	}
	if p.Stock != nil && *p.Stock <= 0 {
		return false
	}
	return true
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/coconina/storefront/app/catalog"
	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/pkg/collection"
	"github.com/coconina/storefront/pkg/links"
	"github.com/coconina/storefront/pkg/response"
)

// Catalog is the read side of the gateway.
type Catalog interface {
	FetchProductsByCategory(ctx context.Context, category string) []models.Product
	FetchProductByID(ctx context.Context, id string) (models.Product, bool)
	FetchCategories(ctx context.Context) []models.Category
}

// ListMeta accompanies a product listing.
type ListMeta struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Label    string `json:"label"`
	Summary  string `json:"summary"`
}

// ProductMeta accompanies a single product.
type ProductMeta struct {
	WhatsAppURL string `json:"whatsappUrl"`
}

type CatalogController struct {
	catalog Catalog
	links   LinkConfig
}

func NewCatalogController(c Catalog, lc LinkConfig) *CatalogController {
	return &CatalogController{catalog: c, links: lc}
}

// Products handles GET /api/products?cat=.
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	cat := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("cat")))
	if cat == "" {
		cat = catalog.AllFilter
	}

	products := c.catalog.FetchProductsByCategory(r.Context(), cat)
	out := collection.Map(products, c.present)

	response.WithMeta(w, out, listMeta(cat, len(out)))
}

// Show handles GET /api/products/{id}.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	p, ok := c.catalog.FetchProductByID(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		response.NotFound(w)
		return
	}

	response.WithMeta(w, c.present(p), ProductMeta{
		WhatsAppURL: links.WhatsAppURL(c.links.Number, ProductInquiryMessage(p.Name)),
	})
}

// Categories handles GET /api/categories.
func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	cats := collection.Map(c.catalog.FetchCategories(r.Context()), func(cat models.Category) models.Category {
		cat.Image.Src = links.ImageURL(c.links.CDNBase, cat.Image.Src)
		return cat
	})
	response.Success(w, cats)
}

// present resolves image paths against the CDN.
func (c *CatalogController) present(p models.Product) models.Product {
	p = p.Clone()
	p.Image.Src = links.ImageURL(c.links.CDNBase, p.Image.Src)
	for i, src := range p.Gallery {
		p.Gallery[i] = links.ImageURL(c.links.CDNBase, src)
	}
	return p
}

func listMeta(cat string, n int) ListMeta {
	if cat == catalog.AllFilter {
		return ListMeta{Category: cat, Count: n, Label: "All Pieces", Summary: fmt.Sprintf("%d unique pieces", n)}
	}
	label := models.ProductCategory(cat).DisplayName()
	return ListMeta{
		Category: cat,
		Count:    n,
		Label:    label,
		Summary:  fmt.Sprintf("%d unique %s", n, strings.ToLower(label)),
	}
}

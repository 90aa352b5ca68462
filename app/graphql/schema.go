// Package graphql exposes the catalog to the storefront renderer as a
// GraphQL schema:
//
//	{ products(category: "rings") { id sku name price image { src alt } } }
//	{ product(id: "origins-rg-001") { name materials whatsappUrl } }
//	{ categories { slug name productCount } }
//	{ category(slug: "rings") { name description productCount } }
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/coconina/storefront/app/catalog"
	"github.com/coconina/storefront/app/controllers"
	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/pkg/collection"
	gql "github.com/coconina/storefront/pkg/graphql"
	"github.com/coconina/storefront/pkg/links"
)

// NewSchema builds the storefront schema over c. Image paths are resolved
// against lc.CDNBase.
func NewSchema(c controllers.Catalog, lc controllers.LinkConfig) (graphql.Schema, error) {
	r := &resolver{catalog: c, links: lc}

	image := graphql.NewObject(graphql.ObjectConfig{
		Name: "Image",
		Fields: graphql.Fields{
			"src": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"alt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	strList := graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))

	product := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"sku":              &graphql.Field{Type: graphql.String},
			"name":             &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":            &graphql.Field{Type: graphql.String, Description: "Decimal price as a string"},
			"category":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"categoryName":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"shortDescription": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"fullDescription":  &graphql.Field{Type: graphql.String},
			"materials":        &graphql.Field{Type: strList},
			"techniques":       &graphql.Field{Type: strList},
			"tags":             &graphql.Field{Type: strList},
			"image":            &graphql.Field{Type: graphql.NewNonNull(image)},
			"gallery":          &graphql.Field{Type: strList},
			"stock":            &graphql.Field{Type: graphql.Int},
			"available":        &graphql.Field{Type: graphql.Boolean},
			"inStock":          &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"whatsappUrl":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	category := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"slug":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"image":       &graphql.Field{Type: graphql.NewNonNull(image)},
			"productCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(product))),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "all"},
				},
				Resolve: r.products,
			},
			"product": &graphql.Field{
				Type: product,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.product,
			},
			"categories": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(category))),
				Resolve: r.categories,
			},
			"category": &graphql.Field{
				Type: category,
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.category,
			},
		},
	})

	return gql.NewSchema(query)
}

type resolver struct {
	catalog controllers.Catalog
	links   controllers.LinkConfig
}

func (r *resolver) products(p graphql.ResolveParams) (interface{}, error) {
	cat, _ := p.Args["category"].(string)
	list := r.catalog.FetchProductsByCategory(p.Context, cat)

	out := make([]map[string]interface{}, len(list))
	for i, prod := range list {
		out[i] = r.productNode(prod)
	}
	return out, nil
}

func (r *resolver) product(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	prod, ok := r.catalog.FetchProductByID(p.Context, id)
	if !ok {
		return nil, nil
	}
	return r.productNode(prod), nil
}

func (r *resolver) categories(p graphql.ResolveParams) (interface{}, error) {
	cats := r.catalog.FetchCategories(p.Context)
	counts := collection.CountBy(r.catalog.FetchProductsByCategory(p.Context, "all"), func(prod models.Product) models.ProductCategory {
		return prod.Category
	})

	out := make([]map[string]interface{}, len(cats))
	for i, c := range cats {
		out[i] = r.categoryNode(c, counts[c.Slug])
	}
	return out, nil
}

// category resolves null for an unknown slug, like product does for an
// unknown id.
func (r *resolver) category(p graphql.ResolveParams) (interface{}, error) {
	slug, _ := p.Args["slug"].(string)
	c, ok := catalog.CategoryBySlug(slug)
	if !ok {
		return nil, nil
	}
	count := len(r.catalog.FetchProductsByCategory(p.Context, string(c.Slug)))
	return r.categoryNode(c, count), nil
}

func (r *resolver) categoryNode(c models.Category, count int) map[string]interface{} {
	return map[string]interface{}{
		"slug":         string(c.Slug),
		"name":         c.Name,
		"description":  c.Description,
		"image":        r.imageNode(c.Image),
		"productCount": count,
	}
}

// productNode flattens a product into plain values so optional fields
// resolve to null rather than to typed nil pointers.
func (r *resolver) productNode(p models.Product) map[string]interface{} {
	gallery := make([]string, len(p.Gallery))
	for i, src := range p.Gallery {
		gallery[i] = links.ImageURL(r.links.CDNBase, src)
	}

	node := map[string]interface{}{
		"id":               p.ID,
		"sku":              nullable(p.SKU),
		"name":             p.Name,
		"price":            nil,
		"category":         string(p.Category),
		"categoryName":     p.Category.DisplayName(),
		"shortDescription": p.ShortDescription,
		"fullDescription":  nullable(p.FullDescription),
		"materials":        nonNil(p.Materials),
		"techniques":       nonNil(p.Techniques),
		"tags":             nonNil(p.Tags),
		"image":            r.imageNode(p.Image),
		"gallery":          gallery,
		"stock":            nil,
		"available":        nil,
		"inStock":          p.InStock(),
		"whatsappUrl":      links.WhatsAppURL(r.links.Number, controllers.ProductInquiryMessage(p.Name)),
	}
	if p.Price != nil {
		node["price"] = p.Price.StringFixed(2)
	}
	if p.Stock != nil {
		node["stock"] = *p.Stock
	}
	if p.Available != nil {
		node["available"] = *p.Available
	}
	return node
}

func (r *resolver) imageNode(img models.Image) map[string]interface{} {
	return map[string]interface{}{
		"src": links.ImageURL(r.links.CDNBase, img.Src),
		"alt": img.Alt,
	}
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

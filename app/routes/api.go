package routes

import (
	"fmt"
	"net/http"

	"github.com/coconina/storefront/app/controllers"
	appgraphql "github.com/coconina/storefront/app/graphql"
	"github.com/coconina/storefront/app/inquiry"
	"github.com/coconina/storefront/app/services"
	"github.com/coconina/storefront/pkg/graphql"
	"github.com/coconina/storefront/pkg/router"
)

// RegisterAPI mounts the storefront JSON API and the GraphQL endpoint.
// modal is the process-wide contact modal flag. mws wrap every route
// registered here, e.g. the rate limiter.
func RegisterAPI(r *router.Router, gw *services.Gateway, lc controllers.LinkConfig, modal *inquiry.Modal, mws ...router.Middleware) error {
	catalogController := controllers.NewCatalogController(gw, lc)
	contactController := controllers.NewContactController(gw)
	linksController := controllers.NewLinksController(gw, lc)
	inquiryController := controllers.NewInquiryController(modal)

	api := r.Group("/api", mws...)
	api.Get("/products", "products.index", catalogController.Products)
	api.Get("/products/{id}", "products.show", catalogController.Show)
	api.Get("/categories", "categories.index", catalogController.Categories)
	api.Post("/contact", "contact.submit", contactController.Submit)
	api.Get("/whatsapp", "whatsapp.link", linksController.WhatsApp)
	api.Get("/inquiry", "inquiry.show", inquiryController.Show)
	api.Post("/inquiry/{action}", "inquiry.update", inquiryController.Update)

	schema, err := appgraphql.NewSchema(gw, lc)
	if err != nil {
		return fmt.Errorf("routes: graphql schema: %w", err)
	}
	gh := graphql.Handler(schema)
	r.Handle(http.MethodPost, "/graphql", "graphql", gh, mws...)
	r.Handle(http.MethodGet, "/graphql", "graphql.query", gh, mws...)

	return nil
}

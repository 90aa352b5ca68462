package controllers

import (
	"net/http"
	"strings"

	"github.com/coconina/storefront/config"
	"github.com/coconina/storefront/pkg/links"
	"github.com/coconina/storefront/pkg/response"
)

// LinkConfig holds the settings used to build outbound links.
type LinkConfig struct {
	CDNBase        string
	Number         string
	DefaultMessage string
}

// LinkConfigFromEnv reads CDN_BASE_URL, WHATSAPP_NUMBER and WHATSAPP_MESSAGE.
func LinkConfigFromEnv() LinkConfig {
	return LinkConfig{
		CDNBase:        config.CDNBaseURL(),
		Number:         config.WhatsAppNumber(),
		DefaultMessage: config.WhatsAppMessage(),
	}
}

// ProductInquiryMessage is the prefilled text for asking about one piece.
func ProductInquiryMessage(name string) string {
	return "I'm interested in: 💎 " + name + " from the Coco&Nina website. Could you provide more information?"
}

type WhatsAppLink struct {
	URL    string `json:"url"`
	Number string `json:"number"`
	Text   string `json:"text"`
}

type LinksController struct {
	catalog Catalog
	cfg     LinkConfig
}

func NewLinksController(c Catalog, cfg LinkConfig) *LinksController {
	return &LinksController{catalog: c, cfg: cfg}
}

// WhatsApp handles GET /api/whatsapp?message=&product=. A product id takes
// precedence over message; with neither the default message is used.
func (c *LinksController) WhatsApp(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := strings.TrimSpace(q.Get("message"))

	if id := q.Get("product"); id != "" {
		p, ok := c.catalog.FetchProductByID(r.Context(), id)
		if !ok {
			response.NotFound(w)
			return
		}
		text = ProductInquiryMessage(p.Name)
	}
	if text == "" {
		text = c.cfg.DefaultMessage
	}

	response.Success(w, WhatsAppLink{
		URL:    links.WhatsAppURL(c.cfg.Number, text),
		Number: links.CleanPhone(c.cfg.Number),
		Text:   text,
	})
}

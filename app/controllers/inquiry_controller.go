package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coconina/storefront/app/inquiry"
	"github.com/coconina/storefront/pkg/response"
)

// InquiryState is the contact modal flag as seen by the storefront.
type InquiryState struct {
	Open bool `json:"open"`
}

// InquiryController exposes the shared contact modal flag so every entry
// point (header button, product pages, footer) reads and writes one state.
type InquiryController struct {
	modal *inquiry.Modal
}

func NewInquiryController(m *inquiry.Modal) *InquiryController {
	return &InquiryController{modal: m}
}

// Show handles GET /api/inquiry.
func (c *InquiryController) Show(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, InquiryState{Open: c.modal.IsOpen()})
}

// Update handles POST /api/inquiry/{action} with action open, close or
// toggle, and returns the resulting state.
func (c *InquiryController) Update(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "open":
		c.modal.Open()
	case "close":
		c.modal.Close()
	case "toggle":
		c.modal.Toggle()
	default:
		response.NotFound(w)
		return
	}
	response.Success(w, InquiryState{Open: c.modal.IsOpen()})
}
